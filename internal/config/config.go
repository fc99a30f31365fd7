// Package config provides configuration loading for chatvault.
//
// Configuration is loaded from an optional TOML (or YAML) file, overridden
// by environment variables, with hardcoded defaults filling in anything
// left unset.
package config

import (
	"fmt"
)

// Config holds the complete chatvault configuration.
type Config struct {
	Engine  EngineConfig  `koanf:"engine"`
	Logging LoggingConfig `koanf:"logging"`
}

// EngineConfig tunes the search and streaming engine.
type EngineConfig struct {
	// BM25K1 and BM25B are the Okapi BM25 term-frequency saturation and
	// length-normalization parameters (spec §4.3.2). They are loaded and
	// validated only: internal/search scores with its own fixed constants
	// (k1 = 1.5, b = 0.75) and does not read these fields.
	BM25K1 float64 `koanf:"bm25_k1"`
	BM25B  float64 `koanf:"bm25_b"`

	// DefaultLimit caps the number of results a search returns when the
	// caller does not specify one.
	DefaultLimit int `koanf:"default_limit"`

	// ProgressCadenceCount and ProgressCadenceInterval describe a progress
	// callback cadence (every N conversations, or after a wall-clock gap).
	// They are loaded and validated only: the adapters' progress gate uses
	// the fixed provider.ProgressCadenceCount and
	// provider.ProgressCadenceInterval and does not read these fields.
	ProgressCadenceCount int `koanf:"progress_cadence_count"`

	ProgressCadenceInterval Duration `koanf:"progress_cadence_interval"`
}

// LoggingConfig mirrors the subset of logging.Config a user can tune
// through chatvault's own config file, translated into a logging.Config
// by the caller (cmd/chatvault) so this package never imports logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// NewDefaultConfig returns a Config with chatvault's built-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			BM25K1:                  1.5,
			BM25B:                   0.75,
			DefaultLimit:            20,
			ProgressCadenceCount:    100,
			ProgressCadenceInterval: Duration(500_000_000), // 500ms
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Engine.BM25K1 <= 0 {
		return fmt.Errorf("engine.bm25_k1 must be > 0, got %v", c.Engine.BM25K1)
	}
	if c.Engine.BM25B < 0 || c.Engine.BM25B > 1 {
		return fmt.Errorf("engine.bm25_b must be between 0 and 1, got %v", c.Engine.BM25B)
	}
	if c.Engine.DefaultLimit <= 0 {
		return fmt.Errorf("engine.default_limit must be > 0, got %d", c.Engine.DefaultLimit)
	}
	if c.Engine.ProgressCadenceCount <= 0 {
		return fmt.Errorf("engine.progress_cadence_count must be > 0, got %d", c.Engine.ProgressCadenceCount)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", c.Logging.Format)
	}
	return nil
}
