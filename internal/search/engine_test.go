package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/chatvault/internal/model"
	"github.com/fyrsmithlabs/chatvault/internal/provider"
)

func seqFrom(convs []model.Conversation) provider.ConversationSeq {
	return func(yield func(model.Conversation, error) bool) {
		for _, c := range convs {
			if !yield(c, nil) {
				return
			}
		}
	}
}

func mustMessage(t *testing.T, id, content string, role model.Role, ts time.Time) model.Message {
	t.Helper()
	m, err := model.NewMessage(id, content, role, ts, nil, nil)
	require.NoError(t, err)
	return m
}

func mustConversation(t *testing.T, id, title string, msgs []model.Message) model.Conversation {
	t.Helper()
	c, err := model.NewConversation(id, title, msgs[0].Timestamp, nil, msgs, nil)
	require.NoError(t, err)
	return c
}

func collect(t *testing.T, seq provider.ResultSeq) []model.SearchResult {
	t.Helper()
	var out []model.SearchResult
	for r, err := range seq {
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestSearch_BasicKeyword(t *testing.T) {
	convA := mustConversation(t, "a", "first chat", []model.Message{
		mustMessage(t, "a1", "I love python scripting", model.RoleUser, baseTime),
	})
	var bMsgs []model.Message
	for i := 0; i < 5; i++ {
		bMsgs = append(bMsgs, mustMessage(t, "b"+string(rune('1'+i)), "python is great for this", model.RoleUser, baseTime.Add(time.Duration(i)*time.Minute)))
	}
	convB := mustConversation(t, "b", "second chat", bMsgs)
	convC := mustConversation(t, "c", "unrelated", []model.Message{
		mustMessage(t, "c1", "nothing to see here", model.RoleUser, baseTime),
	})

	q := model.NewSearchQuery()
	q.Keywords = []string{"python"}
	q.Limit = 10

	seq, err := Run(seqFrom([]model.Conversation{convA, convB, convC}), q)
	require.NoError(t, err)
	results := collect(t, seq)

	require.Len(t, results, 2)
	require.Equal(t, "b", results[0].Conversation.ID)
	require.Len(t, results[0].MatchedMessageIDs, 5)
	require.InDelta(t, 1.0, results[0].Score, 1e-9)
	require.Greater(t, results[0].Score, 0.0)
	require.LessOrEqual(t, results[0].Score, 1.0)
}

func TestSearch_PhraseVsKeywordDisjunction(t *testing.T) {
	convReview := mustConversation(t, "review", "session", []model.Message{
		mustMessage(t, "r1", "let's do a code review today", model.RoleUser, baseTime),
	})
	convPython := mustConversation(t, "py", "session", []model.Message{
		mustMessage(t, "p1", "python is fun", model.RoleUser, baseTime),
	})

	q := model.NewSearchQuery()
	q.Keywords = []string{"python"}
	q.Phrases = []string{"code review"}

	seq, err := Run(seqFrom([]model.Conversation{convReview, convPython}), q)
	require.NoError(t, err)
	results := collect(t, seq)
	require.Len(t, results, 2)
}

func TestSearch_Exclusion(t *testing.T) {
	conv := mustConversation(t, "py", "session", []model.Message{
		mustMessage(t, "p1", "python and django are nice", model.RoleUser, baseTime),
	})

	q := model.NewSearchQuery()
	q.Keywords = []string{"python"}
	q.ExcludeKeywords = []string{"django"}

	seq, err := Run(seqFrom([]model.Conversation{conv}), q)
	require.NoError(t, err)
	results := collect(t, seq)
	require.Empty(t, results)
}

func TestSearch_RoleFilter(t *testing.T) {
	conv := mustConversation(t, "c", "session", []model.Message{
		mustMessage(t, "u1", "please refactor this", model.RoleAssistant, baseTime),
	})

	user := model.RoleUser
	q := model.NewSearchQuery()
	q.Keywords = []string{"refactor"}
	q.RoleFilter = &user
	seq, err := Run(seqFrom([]model.Conversation{conv}), q)
	require.NoError(t, err)
	require.Empty(t, collect(t, seq))

	assistant := model.RoleAssistant
	q2 := model.NewSearchQuery()
	q2.Keywords = []string{"refactor"}
	q2.RoleFilter = &assistant
	seq2, err := Run(seqFrom([]model.Conversation{conv}), q2)
	require.NoError(t, err)
	results := collect(t, seq2)
	require.Len(t, results, 1)
	require.Equal(t, []string{"u1"}, results[0].MatchedMessageIDs)
}

func TestSearch_TitleOnlyQueryScoresZero(t *testing.T) {
	conv := mustConversation(t, "c", "Weekly Standup Notes", []model.Message{
		mustMessage(t, "m1", "anything", model.RoleUser, baseTime),
	})

	q := model.NewSearchQuery()
	q.TitleFilter = "standup"
	seq, err := Run(seqFrom([]model.Conversation{conv}), q)
	require.NoError(t, err)
	results := collect(t, seq)
	require.Len(t, results, 1)
	require.Equal(t, 0.0, results[0].Score)
}

func TestSearch_InvalidQueryRejectedBeforeStreaming(t *testing.T) {
	q := model.SearchQuery{} // no keywords, phrases, or title_filter
	_, err := Run(seqFrom(nil), q)
	require.ErrorIs(t, err, model.ErrInvalidQuery)
}
