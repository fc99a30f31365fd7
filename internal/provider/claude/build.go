package claude

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

// buildConversation turns a decoded rawConversation into a validated
// model.Conversation, or an error describing why it was rejected
// (per-conversation skip, spec.md §4.1).
func buildConversation(rc rawConversation) (model.Conversation, error) {
	if rc.UUID == "" {
		return model.Conversation{}, fmt.Errorf("%w: missing uuid", model.ErrValidation)
	}
	if rc.CreatedAt == "" {
		return model.Conversation{}, fmt.Errorf("%w: conversation/%s: missing created_at", model.ErrValidation, rc.UUID)
	}
	createdAt, err := parseTimestamp(rc.CreatedAt)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("%w: conversation/%s: invalid created_at: %v", model.ErrValidation, rc.UUID, err)
	}

	var updatedAt *time.Time
	if rc.UpdatedAt != "" {
		u, err := parseTimestamp(rc.UpdatedAt)
		if err != nil {
			return model.Conversation{}, fmt.Errorf("%w: conversation/%s: invalid updated_at: %v", model.ErrValidation, rc.UUID, err)
		}
		updatedAt = &u
	}

	messages, err := buildMessages(rc)
	if err != nil {
		return model.Conversation{}, err
	}
	if len(messages) == 0 {
		messages = []model.Message{
			model.PlaceholderMessage(model.GenerateMessageID(rc.UUID, 1), "(Empty conversation)", model.RoleUser, createdAt),
		}
	}

	return model.NewConversation(rc.UUID, rc.Name, createdAt, updatedAt, messages, extractMetadata(rc))
}

// buildMessages walks chat_messages as a flat implicit chain: the parent of
// message i is message i-1 (spec.md §4.2.3). Messages with an unrecognized
// sender are skipped entirely; the chain continues to link around them.
func buildMessages(rc rawConversation) ([]model.Message, error) {
	messages := make([]model.Message, 0, len(rc.ChatMessages))
	var lastID *string
	idx := 0

	for _, raw := range rc.ChatMessages {
		role, ok := normalizeRole(raw.Sender)
		if !ok {
			continue
		}
		if raw.CreatedAt == "" {
			return nil, fmt.Errorf("%w: conversation/%s: message %s missing created_at", model.ErrValidation, rc.UUID, raw.UUID)
		}
		ts, err := parseTimestamp(raw.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: conversation/%s: message %s invalid created_at: %v", model.ErrValidation, rc.UUID, raw.UUID, err)
		}

		content, placeholder := extractContent(raw)

		id := raw.UUID
		if id == "" {
			idx++
			id = model.GenerateMessageID(rc.UUID, idx)
		}

		var metadata map[string]any
		if placeholder {
			metadata = map[string]any{"is_placeholder": true}
		}

		msg, err := model.NewMessage(id, content, role, ts, lastID, metadata)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)

		mid := msg.ID
		lastID = &mid
	}
	return messages, nil
}

// extractMetadata lifts every top-level field prefixed "claude_" into the
// conversation's metadata map, mirroring internal/provider/openai/build.go.
func extractMetadata(rc rawConversation) map[string]any {
	var out map[string]any
	for k, raw := range rc.Extra {
		if !strings.HasPrefix(k, metadataPrefix) {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		if out == nil {
			out = map[string]any{}
		}
		out[strings.TrimPrefix(k, metadataPrefix)] = v
	}
	return out
}
