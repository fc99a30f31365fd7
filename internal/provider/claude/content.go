package claude

import (
	"strings"
	"time"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

// normalizeRole maps a Claude sender onto the normalized Role enum.
// Anything other than "human"/"assistant" is not recognized (spec.md
// §4.2.3: "anything else -> skip with warning").
func normalizeRole(sender string) (model.Role, bool) {
	switch sender {
	case "human":
		return model.RoleUser, true
	case "assistant":
		return model.RoleAssistant, true
	default:
		return "", false
	}
}

// extractContent implements the three-step fallback from spec.md §4.2.3:
// content blocks of type "text", else the top-level text field, else a
// synthesized placeholder marker (the caller sets is_placeholder).
func extractContent(msg rawChatMessage) (content string, placeholder bool) {
	var parts []string
	for _, b := range msg.Content {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	joined := strings.Join(parts, "\n")
	if joined != "" {
		return joined, false
	}
	if msg.Text != "" {
		return msg.Text, false
	}
	return "(Empty message)", true
}

// parseTimestamp parses an ISO-8601 timestamp with offset into UTC. Claude
// exports always carry an explicit offset (spec.md §4.2.3); a naive
// timestamp is rejected per the shared rule in spec.md §4.2.4.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
