package model

import "time"

// Message is an immutable value object representing a single turn in a
// conversation. See spec.md §3.1.
type Message struct {
	ID        string
	Content   string
	Role      Role
	Timestamp time.Time
	ParentID  *string // nil = root
	Metadata  map[string]any
}

// NewMessage constructs and validates a Message. Returns a *ValidationError
// (wrapping ErrValidation) if any invariant is violated.
func NewMessage(id, content string, role Role, ts time.Time, parentID *string, metadata map[string]any) (Message, error) {
	m := Message{
		ID:        id,
		Content:   content,
		Role:      role,
		Timestamp: ts.UTC(),
		ParentID:  parentID,
		Metadata:  metadata,
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Validate checks the per-message invariants from spec.md §8: non-empty id,
// role in {user, assistant, system}, UTC-aware timestamp.
func (m Message) Validate() error {
	if m.ID == "" {
		return newValidationError("message", "id must not be empty")
	}
	if !m.Role.Valid() {
		return newValidationError("message/"+m.ID, "role must be one of user, assistant, system")
	}
	if m.Timestamp.IsZero() {
		return newValidationError("message/"+m.ID, "timestamp is required")
	}
	if m.Timestamp.Location() != time.UTC {
		return newValidationError("message/"+m.ID, "timestamp must be UTC")
	}
	return nil
}

// IsPlaceholder reports whether the message was synthesized by a parser to
// stand in for an empty conversation (spec.md §3.2, §4.2.3).
func (m Message) IsPlaceholder() bool {
	if m.Metadata == nil {
		return false
	}
	v, ok := m.Metadata["is_placeholder"]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}
