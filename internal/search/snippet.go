package search

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

const snippetTargetLen = 100

// extractSnippet implements spec.md §4.3.4: find the first message whose
// content contributed a match, extract content around the first match
// position, trim to ~100 characters breaking on whitespace where possible,
// append "..." if truncated. Falls back to a clipped title if the only
// match was in the title, and to ContentUnavailableSnippet if nothing
// usable was found. If more than one message matched, appends
// " (+N more)" as a literal part of the snippet string.
func extractSnippet(title string, msgs []model.Message, matchedIDs []string, q model.SearchQuery) string {
	if len(matchedIDs) == 0 {
		if titleOnlyMatch(title, q) {
			return clip(title, snippetTargetLen)
		}
		return model.ContentUnavailableSnippet
	}

	byID := make(map[string]model.Message, len(msgs))
	for _, m := range msgs {
		byID[m.ID] = m
	}

	first, ok := byID[matchedIDs[0]]
	if !ok || first.Content == "" {
		return model.ContentUnavailableSnippet
	}

	bytePos := firstMatchPosition(first.Content, q)
	pos := runeIndex(first.Content, bytePos)
	snippet := windowAround(first.Content, pos, snippetTargetLen)

	if len(matchedIDs) > 1 {
		snippet = fmt.Sprintf("%s (+%d more)", snippet, len(matchedIDs)-1)
	}
	return snippet
}

func titleOnlyMatch(title string, q model.SearchQuery) bool {
	lowerTitle := strings.ToLower(title)
	for _, p := range q.Phrases {
		if strings.Contains(lowerTitle, strings.ToLower(p)) {
			return true
		}
	}
	titleTokens := tokenSet(Tokenize(title))
	for _, k := range q.Keywords {
		if _, ok := titleTokens[strings.ToLower(k)]; ok {
			return true
		}
	}
	return false
}

// firstMatchPosition returns the byte offset of the first matching phrase
// or keyword token in content, or 0 if none is found directly (e.g. the
// match came from the title only, or a different message).
func firstMatchPosition(content string, q model.SearchQuery) int {
	lower := strings.ToLower(content)
	best := -1

	for _, p := range q.Phrases {
		if idx := strings.Index(lower, strings.ToLower(p)); idx >= 0 && (best == -1 || idx < best) {
			best = idx
		}
	}
	for _, k := range q.Keywords {
		if idx := strings.Index(lower, strings.ToLower(k)); idx >= 0 && (best == -1 || idx < best) {
			best = idx
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

// runeIndex converts a byte offset into s (as returned by strings.Index)
// into the equivalent rune index, so callers that window over []rune(s)
// don't misposition the window on multi-byte content.
func runeIndex(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	return len([]rune(s[:byteOffset]))
}

// windowAround extracts up to targetLen characters of content centered
// near pos, breaking on whitespace where possible and appending "..." if
// either edge was truncated. pos is a rune index, not a byte offset.
func windowAround(content string, pos, targetLen int) string {
	runes := []rune(content)
	if len(runes) <= targetLen {
		return content
	}

	half := targetLen / 2
	start := pos - half
	if start < 0 {
		start = 0
	}
	end := start + targetLen
	if end > len(runes) {
		end = len(runes)
		start = end - targetLen
		if start < 0 {
			start = 0
		}
	}

	if start > 0 {
		if ws := nextWhitespace(runes, start); ws > 0 && ws < end {
			start = ws + 1
		}
	}
	if end < len(runes) {
		if ws := prevWhitespace(runes, end); ws > start {
			end = ws
		}
	}

	out := strings.TrimSpace(string(runes[start:end]))
	if start > 0 || end < len(runes) {
		out += "..."
	}
	return out
}

func nextWhitespace(runes []rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t' {
			return i
		}
	}
	return -1
}

func prevWhitespace(runes []rune, from int) int {
	for i := from; i >= 0; i-- {
		if runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t' {
			return i
		}
	}
	return -1
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
