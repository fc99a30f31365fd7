package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

func TestExtractSnippet_MultiByteContentPositionsWindowCorrectly(t *testing.T) {
	// Each "café" is 5 bytes but 4 runes; a byte offset used as a rune
	// index would land the window short of the actual match.
	content := strings.Repeat("café ", 40) + "needle " + strings.Repeat("café ", 40)
	q := model.SearchQuery{Keywords: []string{"needle"}}

	msgs := []model.Message{{ID: "m1", Content: content}}
	snippet := extractSnippet("", msgs, []string{"m1"}, q)

	assert.Contains(t, snippet, "needle")
}

func TestRuneIndex(t *testing.T) {
	assert.Equal(t, 0, runeIndex("café needle", 0))
	// "café " is 6 bytes (é is 2 bytes) but 5 runes.
	assert.Equal(t, 5, runeIndex("café needle", 6))
}

func TestWindowAround_ShortContentReturnedWhole(t *testing.T) {
	assert.Equal(t, "short", windowAround("short", 0, snippetTargetLen))
}
