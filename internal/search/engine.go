package search

import (
	"fmt"

	"github.com/fyrsmithlabs/chatvault/internal/model"
	"github.com/fyrsmithlabs/chatvault/internal/provider"
)

// candidate bundles everything carried from the filter pass into the
// scoring pass for one matching conversation.
type candidate struct {
	conv       model.Conversation
	matchedIDs []string
	stats      candidateStats
}

// Run executes query against stream and returns the lazy sequence of
// ranked, sorted, limit-truncated SearchResults (spec.md §4.3). query is
// validated synchronously before the returned sequence is ever iterated,
// so InvalidQuery surfaces before streaming begins (spec.md §7) regardless
// of whether the caller ever ranges over the result.
//
// Ranking requires two passes over the matching candidates (spec.md
// §4.3.2, §9): this implementation folds both passes into a single
// buffering pass over stream, since the candidate set is already bounded
// in memory by the filters applied before scoring -- re-reading the file a
// second time would add I/O without reducing memory.
func Run(stream provider.ConversationSeq, query model.SearchQuery) (provider.ResultSeq, error) {
	q := query
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return func(yield func(model.SearchResult, error) bool) {
		candidates, err := collectCandidates(stream, q)
		if err != nil {
			yield(model.SearchResult{}, err)
			return
		}

		scores := scoreAll(statsOf(candidates), q.Keywords)
		hasRanking := len(q.Keywords) > 0

		results := make([]model.SearchResult, len(candidates))
		for i, c := range candidates {
			score := 0.0
			if hasRanking {
				score = scores[i]
			}
			msgs := searchable(c.conv, q.RoleFilter)
			results[i] = model.SearchResult{
				Conversation:      c.conv,
				Score:             score,
				MatchedMessageIDs: c.matchedIDs,
				Snippet:           extractSnippet(c.conv.Title, msgs, c.matchedIDs, q),
			}
		}
		sortResults(results, q)
		if len(results) > q.Limit {
			results = results[:q.Limit]
		}

		for _, r := range results {
			if !yield(r, nil) {
				return
			}
		}
	}, nil
}

func statsOf(candidates []candidate) []candidateStats {
	out := make([]candidateStats, len(candidates))
	for i, c := range candidates {
		out[i] = c.stats
	}
	return out
}

// collectCandidates runs the cheap gates, role restriction, Stage 1
// content match, and Stage 2 exclusion over stream, returning every
// surviving conversation's BM25 statistics and matched message ids in
// source order.
func collectCandidates(stream provider.ConversationSeq, q model.SearchQuery) ([]candidate, error) {
	var candidates []candidate
	var streamErr error

	for conv, err := range stream {
		if err != nil {
			streamErr = fmt.Errorf("search: %w", err)
			break
		}
		if !cheapGatesPass(conv, q) {
			continue
		}
		msgs := searchable(conv, q.RoleFilter)

		if !stage1Match(conv.Title, msgs, q) {
			continue
		}
		if excluded(conv.Title, msgs, q.ExcludeKeywords) {
			continue
		}

		ids := matchedMessageIDs(msgs, q)
		stats := buildCandidateStats(conv.Title, msgs, q.Keywords)
		candidates = append(candidates, candidate{conv: conv, matchedIDs: ids, stats: stats})
	}
	if streamErr != nil {
		return nil, streamErr
	}
	return candidates, nil
}
