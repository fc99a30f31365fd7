// Package claude implements the provider.Adapter contract for Claude
// conversations.json exports (spec.md §4.2.3).
package claude

import "encoding/json"

// rawConversation is the top-level array element shape.
type rawConversation struct {
	UUID         string                     `json:"uuid"`
	Name         string                     `json:"name"`
	CreatedAt    string                     `json:"created_at"`
	UpdatedAt    string                     `json:"updated_at"`
	ChatMessages []rawChatMessage           `json:"chat_messages"`
	Extra        map[string]json.RawMessage `json:"-"`
}

type rawChatMessage struct {
	UUID      string            `json:"uuid"`
	Sender    string            `json:"sender"`
	Text      string            `json:"text"`
	CreatedAt string            `json:"created_at"`
	Content   []rawContentBlock `json:"content"`
}

type rawContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const metadataPrefix = "claude_"

// decodeRawConversation decodes raw into a rawConversation while also
// capturing every top-level field so claude_-prefixed metadata keys can be
// recovered without a second targeted decode (same split-decode idiom as
// internal/provider/openai/schema.go).
func decodeRawConversation(raw json.RawMessage) (rawConversation, error) {
	var rc rawConversation
	if err := json.Unmarshal(raw, &rc); err != nil {
		return rawConversation{}, err
	}
	var extra map[string]json.RawMessage
	if err := json.Unmarshal(raw, &extra); err != nil {
		return rawConversation{}, err
	}
	rc.Extra = extra
	return rc, nil
}
