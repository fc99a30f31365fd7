package model

import (
	"errors"
	"time"
)

// MatchMode controls how multiple keywords combine (spec.md §3.3).
type MatchMode string

const (
	MatchAny MatchMode = "any"
	MatchAll MatchMode = "all"
)

// SortField selects the SearchResult ordering key (spec.md §3.3, §4.3.5).
type SortField string

const (
	SortByScore    SortField = "score"
	SortByDate     SortField = "date"
	SortByTitle    SortField = "title"
	SortByMessages SortField = "messages"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ErrInvalidQuery is returned by Validate (and raised before streaming
// begins per spec.md §7) when a SearchQuery is malformed.
var ErrInvalidQuery = errors.New("invalid search query")

// SearchQuery describes a search request against a stream of conversations.
// See spec.md §3.3 for the full field semantics.
type SearchQuery struct {
	Keywords         []string
	Phrases          []string
	MatchMode        MatchMode
	ExcludeKeywords  []string
	RoleFilter       *Role
	TitleFilter      string
	FromDate         *time.Time // calendar date, inclusive
	ToDate           *time.Time // calendar date, inclusive
	MinMessages      int
	MaxMessages      int
	SortBy           SortField
	SortOrder        SortOrder
	Limit            int
}

// NewSearchQuery returns a SearchQuery with the spec-mandated defaults
// applied: match_mode=any, sort_by=score, sort_order=desc, limit=10.
func NewSearchQuery() SearchQuery {
	return SearchQuery{
		MatchMode: MatchAny,
		SortBy:    SortByScore,
		SortOrder: SortDesc,
		Limit:     10,
	}
}

// Validate applies the defaults-and-invariants rules from spec.md §3.3 and
// §7 (InvalidQuery is raised before streaming begins). It mutates q in
// place to fill in zero-value defaults, then checks invariants.
func (q *SearchQuery) Validate() error {
	if q.MatchMode == "" {
		q.MatchMode = MatchAny
	}
	if q.MatchMode != MatchAny && q.MatchMode != MatchAll {
		return wrapInvalidQuery("match_mode must be 'any' or 'all'")
	}
	if q.SortBy == "" {
		q.SortBy = SortByScore
	}
	switch q.SortBy {
	case SortByScore, SortByDate, SortByTitle, SortByMessages:
	default:
		return wrapInvalidQuery("sort_by must be one of score, date, title, messages")
	}
	if q.SortOrder == "" {
		q.SortOrder = SortDesc
	}
	if q.SortOrder != SortAsc && q.SortOrder != SortDesc {
		return wrapInvalidQuery("sort_order must be 'asc' or 'desc'")
	}
	if q.Limit == 0 {
		q.Limit = 10
	}
	if q.Limit < 1 {
		return wrapInvalidQuery("limit must be >= 1")
	}

	if q.RoleFilter != nil && !q.RoleFilter.Valid() {
		return wrapInvalidQuery("role_filter must be one of user, assistant, system")
	}

	if len(q.Keywords) == 0 && len(q.Phrases) == 0 && q.TitleFilter == "" {
		return wrapInvalidQuery("at least one of keywords, phrases, or title_filter must be provided")
	}
	for _, k := range q.Keywords {
		if k == "" {
			return wrapInvalidQuery("keywords must not contain empty strings")
		}
	}
	for _, p := range q.Phrases {
		if p == "" {
			return wrapInvalidQuery("phrases must not contain empty strings")
		}
	}

	if q.FromDate != nil && q.ToDate != nil && q.FromDate.After(*q.ToDate) {
		return wrapInvalidQuery("from_date must be <= to_date")
	}
	if q.MinMessages != 0 && q.MinMessages < 1 {
		return wrapInvalidQuery("min_messages must be >= 1")
	}
	if q.MaxMessages != 0 && q.MaxMessages < 1 {
		return wrapInvalidQuery("max_messages must be >= 1")
	}
	if q.MinMessages != 0 && q.MaxMessages != 0 && q.MinMessages > q.MaxMessages {
		return wrapInvalidQuery("min_messages must be <= max_messages")
	}
	return nil
}

type invalidQueryError struct{ reason string }

func (e *invalidQueryError) Error() string { return "invalid query: " + e.reason }
func (e *invalidQueryError) Unwrap() error  { return ErrInvalidQuery }

func wrapInvalidQuery(reason string) error {
	return &invalidQueryError{reason: reason}
}
