package openai

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/chatvault/internal/model"
	"github.com/fyrsmithlabs/chatvault/internal/provider"
)

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conversations.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const twoNodeExport = `[
  {
    "id": "conv-1",
    "title": "Fixing a bug",
    "create_time": 1700000000,
    "update_time": 1700000100,
    "mapping": {
      "root": {"id": "root", "message": null, "parent": null, "children": ["n1"]},
      "n1": {
        "id": "n1",
        "parent": "root",
        "children": ["n2"],
        "message": {
          "id": "msg-1",
          "author": {"role": "user"},
          "content": {"content_type": "text", "parts": ["hello there"]},
          "create_time": 1700000000
        }
      },
      "n2": {
        "id": "n2",
        "parent": "n1",
        "children": [],
        "message": {
          "id": "msg-2",
          "author": {"role": "assistant"},
          "content": {"content_type": "text", "parts": ["hi, how can I help?"]},
          "create_time": 1700000050
        }
      }
    },
    "openai_conversation_template_id": "tmpl-42"
  }
]`

func TestAdapter_Stream_TwoMessages(t *testing.T) {
	path := writeExport(t, twoNodeExport)
	a := NewAdapter()

	var convs []model.Conversation
	for conv, err := range a.Stream(context.Background(), path, Callbacks{}) {
		require.NoError(t, err)
		convs = append(convs, conv)
	}

	require.Len(t, convs, 1)
	conv := convs[0]
	require.Equal(t, "conv-1", conv.ID)
	require.Equal(t, "Fixing a bug", conv.Title)
	require.Len(t, conv.Messages, 2)
	require.Equal(t, model.RoleUser, conv.Messages[0].Role)
	require.Equal(t, "hello there", conv.Messages[0].Content)
	require.Equal(t, model.RoleAssistant, conv.Messages[1].Role)
	require.Nil(t, conv.Messages[0].ParentID)
	require.NotNil(t, conv.Messages[1].ParentID)
	require.Equal(t, conv.Messages[0].ID, *conv.Messages[1].ParentID)
	require.Equal(t, "tmpl-42", conv.Metadata["conversation_template_id"])
}

func TestAdapter_Stream_EmptyMapping_SynthesizesPlaceholder(t *testing.T) {
	path := writeExport(t, `[{"id":"conv-empty","title":"","create_time":1700000000,"mapping":{}}]`)
	a := NewAdapter()

	var convs []model.Conversation
	for conv, err := range a.Stream(context.Background(), path, Callbacks{}) {
		require.NoError(t, err)
		convs = append(convs, conv)
	}

	require.Len(t, convs, 1)
	require.Len(t, convs[0].Messages, 1)
	require.True(t, convs[0].Messages[0].IsPlaceholder())
	require.Equal(t, model.NoTitle, convs[0].Title)
}

func TestAdapter_Stream_MissingCreateTimeSkipsConversation(t *testing.T) {
	path := writeExport(t, `[
		{"id":"bad","title":"no create_time","mapping":{}},
		{"id":"good","title":"fine","create_time":1700000000,"mapping":{}}
	]`)
	a := NewAdapter()

	var skipped []string
	var convs []model.Conversation
	cb := Callbacks{OnSkip: func(id, reason string) { skipped = append(skipped, id) }}
	for conv, err := range a.Stream(context.Background(), path, cb) {
		require.NoError(t, err)
		convs = append(convs, conv)
	}

	require.Equal(t, []string{"bad"}, skipped)
	require.Len(t, convs, 1)
	require.Equal(t, "good", convs[0].ID)
}

func TestAdapter_Stream_NotAnArray(t *testing.T) {
	path := writeExport(t, `{"id":"conv-1"}`)
	a := NewAdapter()

	var sawErr error
	for _, err := range a.Stream(context.Background(), path, Callbacks{}) {
		sawErr = err
	}
	require.ErrorIs(t, sawErr, provider.ErrParse)
}

func TestAdapter_LookupConversation_ExactAndPrefix(t *testing.T) {
	path := writeExport(t, twoNodeExport)
	a := NewAdapter()

	conv, ok, err := a.LookupConversation(context.Background(), path, "conv-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "conv-1", conv.ID)

	conv, ok, err = a.LookupConversation(context.Background(), path, "CONV")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "conv-1", conv.ID)

	_, ok, err = a.LookupConversation(context.Background(), path, "xyz")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAdapter_LookupMessage_WithHint(t *testing.T) {
	path := writeExport(t, twoNodeExport)
	a := NewAdapter()

	msg, conv, ok, err := a.LookupMessage(context.Background(), path, "msg-2", "conv-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "conv-1", conv.ID)
	require.Equal(t, model.RoleAssistant, msg.Role)
}

func TestAdapter_Name(t *testing.T) {
	require.Equal(t, model.ProviderOpenAI, NewAdapter().Name())
}
