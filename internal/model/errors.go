package model

import "errors"

// ValidationError reports that a Conversation or Message violates one of
// the invariants in spec.md §3. When raised from parser code it triggers
// the per-conversation skip path (spec.md §7); when raised directly by a
// library caller constructing a value, it is a programmer error.
type ValidationError struct {
	// Subject is a human-readable identifier of the offending record
	// (conversation id, or "conversation/message" pair).
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Subject == "" {
		return e.Reason
	}
	return e.Subject + ": " + e.Reason
}

// Is supports errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ErrValidation is the sentinel matched by errors.Is against any *ValidationError.
var ErrValidation = errors.New("validation error")

func newValidationError(subject, reason string) error {
	return &ValidationError{Subject: subject, Reason: reason}
}
