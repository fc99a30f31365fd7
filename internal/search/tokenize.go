// Package search implements the two-stage content match, BM25 ranking, and
// snippet extraction pipeline described in spec.md §4.3. It operates over
// any provider.ConversationSeq, so it has no dependency on a specific
// export format.
package search

import (
	"strings"
	"unicode"
)

// asciiPunctSeparators are the ASCII punctuation runes tokenization splits
// on, in addition to Unicode whitespace (spec.md §4.3.3):
// [ \t\n\r.,;:!?()\[\]{}"'`/\\-]
const asciiPunctSeparators = "\t\n\r.,;:!?()[]{}\"'`/\\-"

// isSeparator reports whether r is Unicode whitespace or one of the ASCII
// punctuation separators.
func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	return strings.ContainsRune(asciiPunctSeparators, r)
}

// Tokenize lowercases s and splits it on Unicode whitespace and ASCII
// punctuation, discarding empty tokens. No stemming, no stop words
// (spec.md §4.3.3).
func Tokenize(s string) []string {
	lower := strings.ToLower(s)
	fields := strings.FieldsFunc(lower, isSeparator)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// tokenSet returns the distinct tokens of s as a set, used for "any token
// occurs" membership tests.
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
