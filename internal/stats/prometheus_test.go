package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderPrometheus_ContainsCoreMetrics(t *testing.T) {
	out, err := RenderPrometheus(Totals{ConversationCount: 3, MessageCount: 9, SkippedCount: 1, AverageMessages: 3})
	require.NoError(t, err)
	require.Contains(t, out, "chatvault_conversation_count 3")
	require.Contains(t, out, "chatvault_message_count 9")
	require.Contains(t, out, "chatvault_skipped_count 1")
}
