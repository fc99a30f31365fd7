package model

import (
	"fmt"
	"sort"
	"time"
)

const (
	// NoTitle is substituted for empty source titles (spec.md §3.2).
	NoTitle           = "(No title)"
	maxTitleLen       = 2000
	minTitleLen       = 1
)

// Conversation is an immutable value object: one chat session, its
// metadata, and its primary-thread messages. See spec.md §3.2.
type Conversation struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time // nil means "never modified"
	Messages  []Message  // primary thread, ordered by increasing timestamp, source order as tie-break
	Metadata  map[string]any
}

// NewConversation builds and validates a Conversation from already-parsed
// messages. messages must be supplied in source file order; NewConversation
// stably sorts them by timestamp (spec.md §3.2: "iteration order over
// messages is the primary thread ordered by increasing timestamp, tie-break
// source file order").
func NewConversation(id, title string, createdAt time.Time, updatedAt *time.Time, messages []Message, metadata map[string]any) (Conversation, error) {
	if title == "" {
		title = NoTitle
	}

	c := Conversation{
		ID:        id,
		Title:     title,
		CreatedAt: createdAt.UTC(),
		Messages:  sortedByTimestampStable(messages),
		Metadata:  metadata,
	}
	if updatedAt != nil {
		u := updatedAt.UTC()
		c.UpdatedAt = &u
	}
	if err := c.Validate(); err != nil {
		return Conversation{}, err
	}
	return c, nil
}

func sortedByTimestampStable(messages []Message) []Message {
	out := make([]Message, len(messages))
	copy(out, messages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Validate enforces the invariants from spec.md §3.2 and §8: non-empty id,
// title length 1..2000, UTC-aware created_at, updated_at nil or >=
// created_at and UTC, non-empty messages, parent ids resolving within the
// conversation, and valid individual messages.
func (c Conversation) Validate() error {
	if c.ID == "" {
		return newValidationError("conversation", "id must not be empty")
	}
	if len(c.Title) < minTitleLen || len(c.Title) > maxTitleLen {
		return newValidationError("conversation/"+c.ID, fmt.Sprintf("title length must be in [%d,%d]", minTitleLen, maxTitleLen))
	}
	if c.CreatedAt.IsZero() {
		return newValidationError("conversation/"+c.ID, "created_at is required")
	}
	if c.CreatedAt.Location() != time.UTC {
		return newValidationError("conversation/"+c.ID, "created_at must be UTC")
	}
	if c.UpdatedAt != nil {
		if c.UpdatedAt.Location() != time.UTC {
			return newValidationError("conversation/"+c.ID, "updated_at must be UTC")
		}
		if c.UpdatedAt.Before(c.CreatedAt) {
			return newValidationError("conversation/"+c.ID, "updated_at must be >= created_at")
		}
	}
	if len(c.Messages) == 0 {
		return newValidationError("conversation/"+c.ID, "messages must not be empty")
	}

	known := make(map[string]struct{}, len(c.Messages))
	for _, m := range c.Messages {
		known[m.ID] = struct{}{}
	}
	for _, m := range c.Messages {
		if err := m.Validate(); err != nil {
			return err
		}
		if m.ParentID != nil {
			if _, ok := known[*m.ParentID]; !ok {
				return newValidationError("conversation/"+c.ID, fmt.Sprintf("message %s has parent_id %s not present in conversation", m.ID, *m.ParentID))
			}
		}
	}
	return nil
}

// MessageCount is the derived message_count (spec.md §3.2).
func (c Conversation) MessageCount() int {
	return len(c.Messages)
}

// UpdatedAtOrCreated returns UpdatedAt if set, else CreatedAt.
func (c Conversation) UpdatedAtOrCreated() time.Time {
	if c.UpdatedAt != nil {
		return *c.UpdatedAt
	}
	return c.CreatedAt
}

// MessageByID returns the message with the given id, if present.
func (c Conversation) MessageByID(id string) (Message, bool) {
	for _, m := range c.Messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// PlaceholderMessage returns a synthetic placeholder message used when a
// source conversation has zero messages (spec.md §3.2, §4.2.3).
func PlaceholderMessage(id, content string, role Role, ts time.Time) Message {
	return Message{
		ID:        id,
		Content:   content,
		Role:      role,
		Timestamp: ts.UTC(),
		ParentID:  nil,
		Metadata:  map[string]any{"is_placeholder": true},
	}
}
