package search

import (
	"strings"
	"time"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

// searchable returns the messages of conv matching the query's role filter
// (spec.md §4.3.1 step 2), or every message if no filter is set.
func searchable(conv model.Conversation, roleFilter *model.Role) []model.Message {
	if roleFilter == nil {
		return conv.Messages
	}
	out := make([]model.Message, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		if m.Role == *roleFilter {
			out = append(out, m)
		}
	}
	return out
}

// cheapGatesPass applies the pre-text-scan filters from spec.md §4.3.1
// step 1: date range, message count range, title substring.
func cheapGatesPass(conv model.Conversation, q model.SearchQuery) bool {
	if q.FromDate != nil && conv.CreatedAt.Before(*q.FromDate) {
		return false
	}
	if q.ToDate != nil && conv.CreatedAt.After(endOfDay(*q.ToDate)) {
		return false
	}
	count := conv.MessageCount()
	if q.MinMessages != 0 && count < q.MinMessages {
		return false
	}
	if q.MaxMessages != 0 && count > q.MaxMessages {
		return false
	}
	if q.TitleFilter != "" && !strings.Contains(strings.ToLower(conv.Title), strings.ToLower(q.TitleFilter)) {
		return false
	}
	return true
}

// endOfDay extends a calendar-date bound to the last instant of that UTC
// day so "to_date inclusive" behaves as a whole-day bound regardless of the
// time-of-day component the caller supplied.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999999999, time.UTC)
}
