package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/chatvault/internal/model"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetect_OpenAI(t *testing.T) {
	path := writeTemp(t, `[{"id":"c1","mapping":{}}]`)
	p, err := Detect(path)
	require.NoError(t, err)
	require.Equal(t, model.ProviderOpenAI, p)
}

func TestDetect_Claude(t *testing.T) {
	path := writeTemp(t, `[{"uuid":"c1","chat_messages":[]}]`)
	p, err := Detect(path)
	require.NoError(t, err)
	require.Equal(t, model.ProviderClaude, p)
}

func TestDetect_UnknownFormat(t *testing.T) {
	path := writeTemp(t, `[{"id":"c1"}]`)
	_, err := Detect(path)
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDetect_NotFound(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAgrees(t *testing.T) {
	path := writeTemp(t, `[{"id":"c1","mapping":{}}]`)

	ok, err := Agrees(path, model.ProviderOpenAI)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Agrees(path, model.ProviderClaude)
	require.NoError(t, err)
	require.False(t, ok)
}
