// Package chatvault is the public library surface for chat-export
// ingestion, search, lookup, export, and statistics (spec.md §6). It is the
// only package external callers should import; everything under internal/
// is an implementation detail reachable only through this surface or
// cmd/chatvault.
package chatvault

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/chatvault/internal/config"
	"github.com/fyrsmithlabs/chatvault/internal/export"
	"github.com/fyrsmithlabs/chatvault/internal/logging"
	"github.com/fyrsmithlabs/chatvault/internal/model"
	"github.com/fyrsmithlabs/chatvault/internal/provider"
	"github.com/fyrsmithlabs/chatvault/internal/provider/claude"
	"github.com/fyrsmithlabs/chatvault/internal/provider/openai"
	"github.com/fyrsmithlabs/chatvault/internal/search"
	"github.com/fyrsmithlabs/chatvault/internal/stats"
)

// Re-exported model types so callers never need to import internal/model
// directly.
type (
	Conversation = model.Conversation
	Message      = model.Message
	Role         = model.Role
	Provider     = model.Provider
	SearchQuery  = model.SearchQuery
	SearchResult = model.SearchResult
	MatchMode    = model.MatchMode
	SortField    = model.SortField
	SortOrder    = model.SortOrder
)

// Re-exported roles, providers, and query defaults.
const (
	RoleUser      = model.RoleUser
	RoleAssistant = model.RoleAssistant
	RoleSystem    = model.RoleSystem

	ProviderOpenAI = model.ProviderOpenAI
	ProviderClaude = model.ProviderClaude

	MatchAny MatchMode = model.MatchAny
	MatchAll MatchMode = model.MatchAll

	SortByScore    = model.SortByScore
	SortByDate     = model.SortByDate
	SortByTitle    = model.SortByTitle
	SortByMessages = model.SortByMessages

	SortAsc  = model.SortAsc
	SortDesc = model.SortDesc
)

// NewSearchQuery returns a query with spec-mandated defaults applied.
func NewSearchQuery() SearchQuery { return model.NewSearchQuery() }

// Fatal, request-scoped errors (spec.md §7). Individual conversation
// validation failures never surface here: see Callbacks.OnSkip.
var (
	ErrNotFound                 = provider.ErrNotFound
	ErrPermissionDenied         = provider.ErrPermissionDenied
	ErrParse                    = provider.ErrParse
	ErrUnknownFormat            = provider.ErrUnknownFormat
	ErrUnsupportedSchemaVersion = provider.ErrUnsupportedSchemaVersion
	ErrInvalidQuery             = model.ErrInvalidQuery
)

// ProgressFunc and SkipFunc mirror internal/provider's callback shapes
// (spec.md §4.1, §6).
type (
	ProgressFunc = provider.ProgressFunc
	SkipFunc     = provider.SkipFunc
	Callbacks    = provider.Callbacks
)

// ConversationSeq and ResultSeq are the lazy, cancellable sequences
// produced by Stream and Search.
type (
	ConversationSeq = provider.ConversationSeq
	ResultSeq       = provider.ResultSeq
)

// Vault is a handle on a single chat-export file, bound to the detected or
// explicitly chosen provider adapter. It is stateless and safe for
// concurrent use (spec.md §5): every method opens its own file handle.
type Vault struct {
	file     string
	adapter  provider.Adapter
	provider model.Provider
	logger   *logging.Logger
	cfg      *config.EngineConfig
}

// Open detects the export format of file (unless explicit is non-empty) and
// returns a Vault bound to it. If explicit disagrees with the file's actual
// content, Open still succeeds (spec.md §4.2.1: "explicit provider
// selection bypasses detection") but logs a WARN through logger.
//
// logger and cfg may be nil; a no-op logger and the engine defaults from
// config.NewDefaultConfig are used in that case.
func Open(file string, explicit model.Provider, logger *logging.Logger, cfg *config.EngineConfig) (*Vault, error) {
	if logger == nil {
		logger = logging.FromContext(context.Background())
	}
	if cfg == nil {
		defaults := config.NewDefaultConfig()
		cfg = &defaults.Engine
	}

	requestID := uuid.NewString()
	ctx := logging.WithRequestID(context.Background(), requestID)

	p := explicit
	if p == "" {
		detected, err := provider.Detect(file)
		if err != nil {
			return nil, fmt.Errorf("chatvault: %w", err)
		}
		p = detected
	} else if agrees, err := provider.Agrees(file, explicit); err == nil && !agrees {
		logger.Warn(ctx, "explicit provider disagrees with file content",
			zap.String("file", file), zap.String("explicit", string(explicit)))
	}

	adapter, err := newAdapter(p)
	if err != nil {
		return nil, fmt.Errorf("chatvault: %w", err)
	}

	return &Vault{file: file, adapter: adapter, provider: p, logger: logger, cfg: cfg}, nil
}

func newAdapter(p model.Provider) (provider.Adapter, error) {
	switch p {
	case model.ProviderOpenAI:
		return openai.NewAdapter(), nil
	case model.ProviderClaude:
		return claude.NewAdapter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", provider.ErrUnknownFormat, p)
	}
}

// Provider returns the adapter this Vault is bound to.
func (v *Vault) Provider() model.Provider { return v.provider }

// Stream parses the bound file and yields Conversation values in source
// file order, in O(1) working memory (spec.md §4.1, §4.2).
func (v *Vault) Stream(ctx context.Context, cb Callbacks) ConversationSeq {
	ctx = v.withRequest(ctx, "stream")
	return v.adapter.Stream(ctx, v.file, cb)
}

// Search executes query against the bound file's stream and returns the
// lazy sequence of ranked, sorted, limit-truncated results (spec.md §4.3).
func (v *Vault) Search(ctx context.Context, query SearchQuery) (ResultSeq, error) {
	ctx = v.withRequest(ctx, "search")
	if query.Limit == 0 {
		query.Limit = v.cfg.DefaultLimit
	}
	stream := v.adapter.Stream(ctx, v.file, Callbacks{})
	return search.Run(stream, query)
}

// GetConversation looks up a single conversation by id (exact match, or
// case-insensitive prefix of length >= 4) (spec.md §4.1).
func (v *Vault) GetConversation(ctx context.Context, id string) (Conversation, bool, error) {
	ctx = v.withRequest(ctx, "get-conversation")
	return v.adapter.LookupConversation(ctx, v.file, id)
}

// GetMessage looks up a single message by id, optionally scoped to
// conversationHint (spec.md §4.1).
func (v *Vault) GetMessage(ctx context.Context, messageID, conversationHint string) (Message, Conversation, bool, error) {
	ctx = v.withRequest(ctx, "get-message")
	return v.adapter.LookupMessage(ctx, v.file, messageID, conversationHint)
}

// Stats computes corpus-wide statistics over the bound file (spec.md §4.5).
func (v *Vault) Stats(ctx context.Context) (stats.Totals, error) {
	ctx = v.withRequest(ctx, "stats")
	return stats.Calculate(ctx, v.adapter, v.file)
}

func (v *Vault) withRequest(ctx context.Context, op string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRequestID(ctx, uuid.NewString())
	v.logger.Debug(ctx, "vault operation", zap.String("op", op), zap.String("provider", string(v.provider)))
	return ctx
}

// ExportMarkdown renders conv into the canonical Markdown form (spec.md
// §4.4.1). exportDate stamps the frontmatter's export_date field.
func ExportMarkdown(conv Conversation, exportDate time.Time) string {
	return export.Markdown(conv, export.NewMarkdownOptions(exportDate))
}

// ExportConversationsCSV writes convs as the canonical CSV form (spec.md
// §4.4.2).
func ExportConversationsCSV(w io.Writer, convs []Conversation) error {
	return export.ConversationsCSV(w, convs)
}

// ExportSearchResultsCSV writes results as the canonical CSV form (spec.md
// §4.4.2).
func ExportSearchResultsCSV(w io.Writer, results []SearchResult) error {
	return export.SearchResultsCSV(w, results)
}

// ExportMessagesCSV writes conv's messages as the canonical CSV form
// (spec.md §4.4.2).
func ExportMessagesCSV(w io.Writer, conv Conversation) error {
	return export.MessagesCSV(w, conv)
}

// StatsConversation computes per-conversation statistics for a single
// already-parsed Conversation (spec.md §4.5).
func StatsConversation(conv Conversation) stats.PerConversation {
	return stats.CalculateConversation(conv)
}

// RenderPrometheus renders totals as Prometheus text exposition format, a
// batch rendering rather than a served endpoint (see DESIGN.md).
func RenderPrometheus(totals stats.Totals) (string, error) {
	return stats.RenderPrometheus(totals)
}
