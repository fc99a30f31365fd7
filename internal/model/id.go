package model

import "fmt"

// GenerateMessageID deterministically synthesizes a message id for a
// message that arrived from the source export without one, so that every
// Message satisfies the non-empty id invariant (spec.md §8) and so that
// Markdown export (spec.md §4.4.1) is reproducible across runs: the same
// (conversationID, index) pair always yields the same id.
func GenerateMessageID(conversationID string, index int) string {
	return fmt.Sprintf("msg-%s-%03d", conversationID, index)
}
