// Package openai implements the provider.Adapter contract for ChatGPT
// export files (spec.md §4.2.2).
package openai

import "encoding/json"

// rawConversation is the top-level array element shape. Unknown fields are
// preserved via Extra so that extractMetadata (spec.md §4.2.2: fields
// prefixed "openai_") can be recovered without a second decode pass.
type rawConversation struct {
	ID         string                     `json:"id"`
	Title      string                     `json:"title"`
	CreateTime *float64                   `json:"create_time"`
	UpdateTime *float64                   `json:"update_time"`
	Mapping    map[string]rawMappingNode  `json:"mapping"`
	Extra      map[string]json.RawMessage `json:"-"`
}

type rawMappingNode struct {
	ID       string      `json:"id"`
	Message  *rawMessage `json:"message"`
	Parent   *string     `json:"parent"`
	Children []string    `json:"children"`
}

type rawMessage struct {
	ID     string `json:"id"`
	Author struct {
		Role string `json:"role"`
	} `json:"author"`
	Content struct {
		ContentType string            `json:"content_type"`
		Parts       []json.RawMessage `json:"parts"`
	} `json:"content"`
	CreateTime *float64       `json:"create_time"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// decodeRawConversation decodes raw into a rawConversation while also
// capturing every top-level field so openai_-prefixed metadata keys can be
// recovered, mirroring the teacher's pattern of decoding into a typed
// struct and then scanning raw JSON for provider-specific extras
// (internal/conversation/parser.go's jsonlMessage + claudeMessage split).
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
