// Package stats computes aggregate and per-conversation statistics over a
// stream of conversations (spec.md §4.5).
package stats

import (
	"context"
	"time"

	"github.com/fyrsmithlabs/chatvault/internal/model"
	"github.com/fyrsmithlabs/chatvault/internal/provider"
)

// ConversationSummary identifies a conversation by id, title, and message
// count, used to report the largest/smallest conversation seen.
type ConversationSummary struct {
	ID           string
	Title        string
	MessageCount int
}

// Totals is the result of a single streaming fold over a file (spec.md
// §4.5).
type Totals struct {
	ConversationCount int
	MessageCount      int
	EarliestCreatedAt *time.Time
	LatestCreatedAt   *time.Time
	AverageMessages   float64
	Largest           *ConversationSummary
	Smallest          *ConversationSummary
	SkippedCount      int
}

// Calculate streams file through adapter and folds the result into Totals.
// Skipped conversations (reported through the adapter's skip callback) are
// counted in SkippedCount without otherwise contributing to the totals.
func Calculate(ctx context.Context, adapter provider.Adapter, file string) (Totals, error) {
	var t Totals
	skipped := 0
	cb := provider.Callbacks{OnSkip: func(string, string) { skipped++ }}

	for conv, err := range adapter.Stream(ctx, file, cb) {
		if err != nil {
			return Totals{}, err
		}
		t.ConversationCount++
		t.MessageCount += conv.MessageCount()

		if t.EarliestCreatedAt == nil || conv.CreatedAt.Before(*t.EarliestCreatedAt) {
			ts := conv.CreatedAt
			t.EarliestCreatedAt = &ts
		}
		if t.LatestCreatedAt == nil || conv.CreatedAt.After(*t.LatestCreatedAt) {
			ts := conv.CreatedAt
			t.LatestCreatedAt = &ts
		}

		summary := ConversationSummary{ID: conv.ID, Title: conv.Title, MessageCount: conv.MessageCount()}
		if t.Largest == nil || summary.MessageCount > t.Largest.MessageCount {
			t.Largest = &summary
		}
		if t.Smallest == nil || summary.MessageCount < t.Smallest.MessageCount {
			t.Smallest = &summary
		}
	}

	t.SkippedCount = skipped
	if t.ConversationCount > 0 {
		t.AverageMessages = float64(t.MessageCount) / float64(t.ConversationCount)
	}
	return t, nil
}

// PerConversation is the pure, I/O-free per-conversation breakdown from
// spec.md §4.5.
type PerConversation struct {
	UserCount          int
	AssistantCount     int
	SystemCount        int
	TotalCount         int
	FirstTimestamp     time.Time
	LastTimestamp      time.Time
	DurationSeconds    float64
	AverageGapSeconds  *float64 // nil if fewer than 2 messages
}

// CalculateConversation computes PerConversation for conv. conv.Messages is
// assumed already sorted by timestamp (the invariant model.NewConversation
// enforces).
func CalculateConversation(conv model.Conversation) PerConversation {
	var p PerConversation
	for _, m := range conv.Messages {
		switch m.Role {
		case model.RoleUser:
			p.UserCount++
		case model.RoleAssistant:
			p.AssistantCount++
		case model.RoleSystem:
			p.SystemCount++
		}
	}
	p.TotalCount = len(conv.Messages)
	if p.TotalCount == 0 {
		return p
	}

	p.FirstTimestamp = conv.Messages[0].Timestamp
	p.LastTimestamp = conv.Messages[len(conv.Messages)-1].Timestamp
	p.DurationSeconds = p.LastTimestamp.Sub(p.FirstTimestamp).Seconds()

	if p.TotalCount >= 2 {
		var totalGap float64
		for i := 1; i < len(conv.Messages); i++ {
			totalGap += conv.Messages[i].Timestamp.Sub(conv.Messages[i-1].Timestamp).Seconds()
		}
		avg := totalGap / float64(p.TotalCount-1)
		p.AverageGapSeconds = &avg
	}
	return p
}
