// Package provider defines the Adapter contract shared by every chat
// export format (spec.md §4.1): a stateless value exposing streaming read
// and id lookup over a single file path. Search is not part of the
// contract; internal/search runs over an adapter's stream.
package provider

import (
	"context"
	"iter"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

// ProgressFunc is invoked with the running count of successfully yielded
// conversations. Calls are monotonic non-decreasing (spec.md §4.1, §6).
type ProgressFunc func(count int)

// SkipFunc is invoked at most once per skipped conversation, with its id
// (or "unknown" if the id itself could not be recovered) and the reason it
// failed validation (spec.md §4.1, §6).
type SkipFunc func(id, reason string)

// Callbacks bundles the optional progress and skip hooks for a single
// streaming request. Either field may be nil.
type Callbacks struct {
	Progress ProgressFunc
	OnSkip   SkipFunc
}

func (c Callbacks) reportProgress(count int) {
	if c.Progress != nil {
		c.Progress(count)
	}
}

func (c Callbacks) reportSkip(id, reason string) {
	if c.OnSkip != nil {
		c.OnSkip(id, reason)
	}
}

// ConversationSeq is a finite, non-restartable lazy sequence of parsed
// conversations paired with a terminal error. Iteration stops as soon as
// the consumer's yield returns false (spec.md §5: cancellation is a
// first-class suspension point) or the sequence is exhausted; a non-nil
// error on the final iteration signals a fatal failure (spec.md §7).
type ConversationSeq = iter.Seq2[model.Conversation, error]

// ResultSeq is the lazy sequence of ranked SearchResults produced by the
// search engine (spec.md §4.3).
type ResultSeq = iter.Seq2[model.SearchResult, error]

// Adapter is a stateless provider value, safe to share across concurrent
// callers (spec.md §4.1, §5). Implementations: internal/provider/openai,
// internal/provider/claude.
type Adapter interface {
	// Name identifies the provider (spec.md §4.2.1).
	Name() model.Provider

	// Stream parses file and yields Conversation values in source file
	// order, in O(1) working memory (spec.md §4.1, §4.2).
	Stream(ctx context.Context, file string, cb Callbacks) ConversationSeq

	// LookupConversation returns the conversation whose id exactly matches
	// id, or whose id case-insensitively matches id as a prefix of length
	// >= 4, stopping at the first match found in file order (spec.md
	// §4.1).
	LookupConversation(ctx context.Context, file, id string) (model.Conversation, bool, error)

	// LookupMessage returns the message with the given id together with
	// its owning conversation. conversationHint, if non-empty, short-
	// circuits the search to that conversation (spec.md §4.1).
	LookupMessage(ctx context.Context, file, messageID, conversationHint string) (model.Message, model.Conversation, bool, error)
}
