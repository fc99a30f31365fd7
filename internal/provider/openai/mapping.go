package openai

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

// primaryThread walks the mapping DAG and returns the root-to-leaf path
// selected as the primary thread (spec.md §4.2.2, SPEC_FULL.md §7.3): from
// each root, follow children[0] to a leaf; the root whose subtree has the
// latest-timestamped leaf wins, ties broken by root id ascending for
// determinism across re-parses.
func primaryThread(mapping map[string]rawMappingNode) []string {
	if len(mapping) == 0 {
		return nil
	}

	roots := make([]string, 0, 1)
	for id, n := range mapping {
		if n.Parent == nil || *n.Parent == "" {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 {
		// No explicit root (e.g. truncated export): fall back to any node
		// with a parent absent from the mapping, else treat every node as
		// its own root candidate.
		for id, n := range mapping {
			if n.Parent != nil {
				if _, ok := mapping[*n.Parent]; !ok {
					roots = append(roots, id)
				}
			}
		}
	}
	if len(roots) == 0 {
		for id := range mapping {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)

	var bestPath []string
	var bestLeafTime time.Time
	haveBest := false

	for _, rootID := range roots {
		path := walkFirstChild(mapping, rootID)
		leafTime := deepestTimestamp(mapping, path)
		if !haveBest || leafTime.After(bestLeafTime) {
			bestPath = path
			bestLeafTime = leafTime
			haveBest = true
		}
	}
	return bestPath
}

// walkFirstChild follows children[0] from rootID until a leaf, guarding
// against cycles in malformed exports.
func walkFirstChild(mapping map[string]rawMappingNode, rootID string) []string {
	visited := make(map[string]struct{}, len(mapping))
	path := make([]string, 0, len(mapping))

	cur := rootID
	for {
		if _, seen := visited[cur]; seen {
			break
		}
		visited[cur] = struct{}{}
		path = append(path, cur)

		node, ok := mapping[cur]
		if !ok || len(node.Children) == 0 {
			break
		}
		cur = node.Children[0]
	}
	return path
}

// deepestTimestamp returns the create_time of the deepest node in path that
// carries a message, or the zero time if none do.
func deepestTimestamp(mapping map[string]rawMappingNode, path []string) time.Time {
	for i := len(path) - 1; i >= 0; i-- {
		node, ok := mapping[path[i]]
		if !ok || node.Message == nil || node.Message.CreateTime == nil {
			continue
		}
		return posixToUTC(*node.Message.CreateTime)
	}
	return time.Time{}
}

func posixToUTC(seconds float64) time.Time {
	whole := int64(seconds)
	frac := seconds - float64(whole)
	return time.Unix(whole, int64(frac*1e9)).UTC()
}

// normalizeRole maps an OpenAI author.role onto the normalized Role enum.
// "tool" and "function" roles are folded into system: they carry
// programmatic output, not a human or model conversational turn, and the
// normalized model has no fourth role.
func normalizeRole(raw string) (model.Role, bool) {
	switch raw {
	case "user":
		return model.RoleUser, true
	case "assistant":
		return model.RoleAssistant, true
	case "system", "tool", "function":
		return model.RoleSystem, true
	default:
		return "", false
	}
}

// extractContent joins parts with "\n", in original order; non-text parts
// contribute the literal empty string to that join rather than being
// dropped, so content offsets still line up with the part positions a
// caller recorded in message metadata (spec.md §4.2.2). nonTextCount is
// still reported separately for that metadata.
func extractContent(parts []json.RawMessage) (text string, nonTextCount int) {
	joined := make([]string, len(parts))
	for i, p := range parts {
		var s string
		if err := json.Unmarshal(p, &s); err == nil {
			joined[i] = s
			continue
		}
		nonTextCount++
	}
	return joinParts(joined), nonTextCount
}

func joinParts(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\n"
		}
		out += p
	}
	return out
}
