package openai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

const metadataPrefix = "openai_"

// buildConversation turns a decoded rawConversation into a validated
// model.Conversation, or an error describing why it was rejected. Rejection
// here is always a per-conversation validation failure (spec.md §4.1): the
// caller reports it through Callbacks.OnSkip and continues streaming.
func buildConversation(rc rawConversation) (model.Conversation, error) {
	if rc.ID == "" {
		return model.Conversation{}, fmt.Errorf("%w: missing id", model.ErrValidation)
	}
	if rc.CreateTime == nil {
		return model.Conversation{}, fmt.Errorf("%w: conversation/%s: missing create_time", model.ErrValidation, rc.ID)
	}
	createdAt := posixToUTC(*rc.CreateTime)

	var updatedAt *time.Time
	if rc.UpdateTime != nil {
		u := posixToUTC(*rc.UpdateTime)
		updatedAt = &u
	}

	messages, err := buildMessages(rc)
	if err != nil {
		return model.Conversation{}, err
	}
	if len(messages) == 0 {
		messages = []model.Message{
			model.PlaceholderMessage(model.GenerateMessageID(rc.ID, 1), "(Empty conversation)", model.RoleUser, createdAt),
		}
	}

	return model.NewConversation(rc.ID, rc.Title, createdAt, updatedAt, messages, extractMetadata(rc))
}

// buildMessages walks the primary thread and normalizes each message node,
// skipping nodes without a message and nodes whose author role is missing
// or not one of user, assistant, system, tool or function (tool and
// function fold into system).
func buildMessages(rc rawConversation) ([]model.Message, error) {
	path := primaryThread(rc.Mapping)

	messages := make([]model.Message, 0, len(path))
	var lastID *string
	idx := 0

	for _, nodeID := range path {
		node, ok := rc.Mapping[nodeID]
		if !ok || node.Message == nil {
			continue
		}
		raw := node.Message

		role, ok := normalizeRole(raw.Author.Role)
		if !ok {
			continue
		}
		if raw.CreateTime == nil {
			return nil, fmt.Errorf("%w: conversation/%s: message %s missing create_time", model.ErrValidation, rc.ID, nodeID)
		}
		ts := posixToUTC(*raw.CreateTime)

		content, nonTextCount := extractContent(raw.Content.Parts)

		id := raw.ID
		if id == "" {
			idx++
			id = model.GenerateMessageID(rc.ID, idx)
		}

		metadata := map[string]any{}
		for k, v := range raw.Metadata {
			metadata[k] = v
		}
		if nonTextCount > 0 {
			metadata["non_text_parts"] = nonTextCount
		}
		if len(metadata) == 0 {
			metadata = nil
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

// extractMetadata lifts every top-level field prefixed "openai_" into the
// conversation's metadata map (spec.md §4.2.2); the prefix is stripped so
// the stored key matches the other providers' metadata convention.
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
