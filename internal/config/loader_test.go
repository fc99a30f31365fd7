package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_NoFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestLoadFile_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "engine:\n  bm25_k1: 2.0\n  default_limit: 50\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Engine.BM25K1)
	assert.Equal(t, 50, cfg.Engine.DefaultLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 0.75, cfg.Engine.BM25B, "unset fields keep their default")
}

func TestLoadFile_TOMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[engine]\nbm25_k1 = 2.0\ndefault_limit = 50\n\n[logging]\nlevel = \"debug\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Engine.BM25K1)
	assert.Equal(t, 50, cfg.Engine.DefaultLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 0.75, cfg.Engine.BM25B, "unset fields keep their default")
}

func TestLoadFile_EnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  default_limit: 50\n"), 0o644))

	t.Setenv("CHATVAULT_ENGINE_DEFAULT_LIMIT", "99")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.Engine.DefaultLimit)
}

func TestLoadFile_InvalidResultFailsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  bm25_k1: -1\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bm25_k1")
}
