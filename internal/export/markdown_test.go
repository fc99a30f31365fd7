package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

func simpleTextConversation(t *testing.T) model.Conversation {
	t.Helper()
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	u, err := model.NewMessage("msg-1", "Hello, can you help me with Go?", model.RoleUser, created, nil, nil)
	require.NoError(t, err)
	parent := u.ID
	a, err := model.NewMessage("msg-2", "Sure, what do you need?", model.RoleAssistant, created.Add(time.Minute), &parent, nil)
	require.NoError(t, err)
	conv, err := model.NewConversation("conv-001", "Quick Go question", created, nil, []model.Message{u, a}, nil)
	require.NoError(t, err)
	return conv
}

func TestMarkdown_GoldenMaster(t *testing.T) {
	conv := simpleTextConversation(t)
	exportDate := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	out := Markdown(conv, NewMarkdownOptions(exportDate))

	expected := "---\n" +
		"id: conv-001\n" +
		"title: Quick Go question\n" +
		"created_at: \"2024-03-01T09:00:00Z\"\n" +
		"updated_at: \"2024-03-01T09:00:00Z\"\n" +
		"message_count: 2\n" +
		"export_date: \"2024-03-02T00:00:00Z\"\n" +
		"exported_by: chatvault\n" +
		"---\n\n" +
		"# Quick Go question\n\n" +
		"## User (`msg-1`) - 2024-03-01 09:00:00 UTC\n\n" +
		"Hello, can you help me with Go?\n\n---\n\n" +
		"## Assistant (`msg-2`) - 2024-03-01 09:01:00 UTC\n\n" +
		"Sure, what do you need?\n\n---\n\n"

	require.Equal(t, expected, out)
}

func TestMarkdown_RunTwiceIsByteIdentical(t *testing.T) {
	conv := simpleTextConversation(t)
	opts := NewMarkdownOptions(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	require.Equal(t, Markdown(conv, opts), Markdown(conv, opts))
}

func TestMarkdown_NoFrontmatter(t *testing.T) {
	conv := simpleTextConversation(t)
	out := Markdown(conv, MarkdownOptions{IncludeFrontmatter: false})
	require.NotContains(t, out, "---\nid:")
	require.Contains(t, out, "# Quick Go question")
}

func TestMarkdown_GeneratesIDForMissingMessageID(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m, err := model.NewMessage("placeholder-keep", "hi", model.RoleUser, created, nil, nil)
	require.NoError(t, err)
	conv, err := model.NewConversation("conv-002", "", created, nil, []model.Message{m}, nil)
	require.NoError(t, err)
	conv.Messages[0].ID = "" // a source message that arrived without an id

	out := Markdown(conv, MarkdownOptions{})
	require.Contains(t, out, "`msg-conv-002-001`")
}
