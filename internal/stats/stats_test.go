package stats

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/chatvault/internal/model"
	"github.com/fyrsmithlabs/chatvault/internal/provider/openai"
)

func TestCalculate_FoldsAcrossConversations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")
	content := `[
		{"id":"c1","title":"one","create_time":1700000000,"mapping":{
			"root":{"id":"root","message":null,"parent":null,"children":["n1"]},
			"n1":{"id":"n1","parent":"root","children":[],"message":{"id":"m1","author":{"role":"user"},"content":{"content_type":"text","parts":["hi"]},"create_time":1700000000}}
		}},
		{"id":"c2","title":"two","create_time":1700000100,"mapping":{
			"root":{"id":"root","message":null,"parent":null,"children":["n1"]},
			"n1":{"id":"n1","parent":"root","children":["n2"],"message":{"id":"m1","author":{"role":"user"},"content":{"content_type":"text","parts":["hi"]},"create_time":1700000100}},
			"n2":{"id":"n2","parent":"n1","children":[],"message":{"id":"m2","author":{"role":"assistant"},"content":{"content_type":"text","parts":["hello"]},"create_time":1700000110}}
		}},
		{"id":"bad","title":"no create_time","mapping":{}}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	a := openai.NewAdapter()
	totals, err := Calculate(context.Background(), a, path)
	require.NoError(t, err)

	require.Equal(t, 2, totals.ConversationCount)
	require.Equal(t, 3, totals.MessageCount)
	require.Equal(t, 1, totals.SkippedCount)
	require.InDelta(t, 1.5, totals.AverageMessages, 1e-9)
	require.Equal(t, "c2", totals.Largest.ID)
	require.Equal(t, "c1", totals.Smallest.ID)
}

func TestCalculateConversation_SingleMessage(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m, err := model.NewMessage("m1", "hi", model.RoleUser, created, nil, nil)
	require.NoError(t, err)
	conv, err := model.NewConversation("c1", "t", created, nil, []model.Message{m}, nil)
	require.NoError(t, err)

	p := CalculateConversation(conv)
	require.Equal(t, 0.0, p.DurationSeconds)
	require.Nil(t, p.AverageGapSeconds)
}

func TestCalculateConversation_MultipleMessages(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	u, err := model.NewMessage("m1", "hi", model.RoleUser, created, nil, nil)
	require.NoError(t, err)
	parent := u.ID
	a, err := model.NewMessage("m2", "hello", model.RoleAssistant, created.Add(10*time.Second), &parent, nil)
	require.NoError(t, err)
	conv, err := model.NewConversation("c1", "t", created, nil, []model.Message{u, a}, nil)
	require.NoError(t, err)

	p := CalculateConversation(conv)
	require.Equal(t, 1, p.UserCount)
	require.Equal(t, 1, p.AssistantCount)
	require.Equal(t, 10.0, p.DurationSeconds)
	require.NotNil(t, p.AverageGapSeconds)
	require.InDelta(t, 10.0, *p.AverageGapSeconds, 1e-9)
}
