package search

import (
	"sort"
	"strings"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

// sortResults orders results per spec.md §4.3.5 in place, using a stable
// sort so that equal keys (other than score) preserve source file order
// (results is already in source order on entry).
func sortResults(results []model.SearchResult, q model.SearchQuery) {
	asc := fieldLess(q.SortBy)
	desc := q.SortOrder == model.SortDesc

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		switch {
		case asc(a, b):
			return !desc
		case asc(b, a):
			return desc
		case q.SortBy == model.SortByScore:
			// Equal score: always break ties by conversation id
			// ascending, regardless of the requested sort order.
			return a.Conversation.ID < b.Conversation.ID
		default:
			// Equal key on any other field: preserve source order.
			return false
		}
	})
}

// fieldLess returns a strict ascending "a before b" comparison for the
// requested sort field.
func fieldLess(field model.SortField) func(a, b model.SearchResult) bool {
	switch field {
	case model.SortByDate:
		return func(a, b model.SearchResult) bool {
			return a.Conversation.UpdatedAtOrCreated().Before(b.Conversation.UpdatedAtOrCreated())
		}
	case model.SortByTitle:
		return func(a, b model.SearchResult) bool {
			return strings.ToLower(a.Conversation.Title) < strings.ToLower(b.Conversation.Title)
		}
	case model.SortByMessages:
		return func(a, b model.SearchResult) bool {
			return a.Conversation.MessageCount() < b.Conversation.MessageCount()
		}
	default: // score
		return func(a, b model.SearchResult) bool {
			return a.Score < b.Score
		}
	}
}
