package claude

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fyrsmithlabs/chatvault/internal/model"
	"github.com/fyrsmithlabs/chatvault/internal/provider"
)

// minLookupPrefixLen is the minimum length of a case-insensitive prefix
// match accepted by LookupConversation/LookupMessage (spec.md §4.1).
const minLookupPrefixLen = 4

// Callbacks is a package-local alias kept for readability in this file; it
// is identical to provider.Callbacks.
type Callbacks = provider.Callbacks

// Adapter implements provider.Adapter for Claude conversations.json
// exports. Stateless: every method opens its own file handle and closes it
// before returning (spec.md §4.1, §5).
type Adapter struct{}

// NewAdapter returns a ready-to-use Claude Adapter.
func NewAdapter() Adapter {
	return Adapter{}
}

// Name implements provider.Adapter.
func (Adapter) Name() model.Provider {
	return model.ProviderClaude
}

// Stream implements provider.Adapter.
func (a Adapter) Stream(ctx context.Context, file string, cb Callbacks) provider.ConversationSeq {
	return func(yield func(model.Conversation, error) bool) {
		f, err := openForRead(file)
		if err != nil {
			yield(model.Conversation{}, err)
			return
		}
		defer f.Close()

		dec := json.NewDecoder(bufio.NewReaderSize(f, 64*1024))
		if err := expectArrayStart(dec); err != nil {
			yield(model.Conversation{}, err)
			return
		}

		gate := provider.NewProgressGate()
		count := 0

		for dec.More() {
			if err := ctx.Err(); err != nil {
				return
			}

			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				yield(model.Conversation{}, fmt.Errorf("%w: %v", provider.ErrParse, err))
				return
			}

			rc, err := decodeRawConversation(raw)
			if err != nil {
				if cb.OnSkip != nil {
					cb.OnSkip("unknown", err.Error())
				}
				continue
			}

			conv, err := buildConversation(rc)
			if err != nil {
				id := rc.UUID
				if id == "" {
					id = "unknown"
				}
				if cb.OnSkip != nil {
					cb.OnSkip(id, err.Error())
				}
				continue
			}

			count++
			if gate.Tick(count) && cb.Progress != nil {
				cb.Progress(count)
			}

			if !yield(conv, nil) {
				return
			}
		}
	}
}

// LookupConversation implements provider.Adapter.
func (a Adapter) LookupConversation(ctx context.Context, file, id string) (model.Conversation, bool, error) {
	var found model.Conversation
	var ok bool
	var streamErr error

	for conv, err := range a.Stream(ctx, file, Callbacks{}) {
		if err != nil {
			streamErr = err
			break
		}
		if matchesID(conv.ID, id) {
			found = conv
			ok = true
			break
		}
	}
	if streamErr != nil {
		return model.Conversation{}, false, streamErr
	}
	return found, ok, nil
}

// LookupMessage implements provider.Adapter.
func (a Adapter) LookupMessage(ctx context.Context, file, messageID, conversationHint string) (model.Message, model.Conversation, bool, error) {
	if conversationHint != "" {
		conv, ok, err := a.LookupConversation(ctx, file, conversationHint)
		if err != nil {
			return model.Message{}, model.Conversation{}, false, err
		}
		if ok {
			if m, found := findMessage(conv, messageID); found {
				return m, conv, true, nil
			}
		}
		return model.Message{}, model.Conversation{}, false, nil
	}

	for conv, err := range a.Stream(ctx, file, Callbacks{}) {
		if err != nil {
			return model.Message{}, model.Conversation{}, false, err
		}
		if m, found := findMessage(conv, messageID); found {
			return m, conv, true, nil
		}
	}
	return model.Message{}, model.Conversation{}, false, nil
}

func findMessage(conv model.Conversation, messageID string) (model.Message, bool) {
	for _, m := range conv.Messages {
		if matchesID(m.ID, messageID) {
			return m, true
		}
	}
	return model.Message{}, false
}

// matchesID implements the exact-or-prefix rule from spec.md §4.1.
func matchesID(candidate, query string) bool {
	if candidate == query {
		return true
	}
	if len(query) < minLookupPrefixLen {
		return false
	}
	return len(candidate) >= len(query) &&
		strings.EqualFold(candidate[:len(query)], query)
}

func expectArrayStart(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: empty file", provider.ErrParse)
		}
		return fmt.Errorf("%w: %v", provider.ErrParse, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '[' {
		return fmt.Errorf("%w: top-level value must be a JSON array", provider.ErrParse)
	}
	return nil
}

func openForRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", provider.ErrNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", provider.ErrPermissionDenied, path)
		}
		return nil, err
	}
	return f, nil
}
