package logging

import (
	"fmt"

	"github.com/fyrsmithlabs/chatvault/internal/config"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration for one Vault/CLI process.
type Config struct {
	Level      zapcore.Level     `koanf:"level"`
	Format     string            `koanf:"format"`
	Sampling   SamplingConfig    `koanf:"sampling"`
	Caller     CallerConfig      `koanf:"caller"`
	Stacktrace StacktraceConfig  `koanf:"stacktrace"`
	Fields     map[string]string `koanf:"fields"`
}

// SamplingConfig controls log volume reduction.
type SamplingConfig struct {
	Enabled bool                                  `koanf:"enabled"`
	Tick    config.Duration                       `koanf:"tick"`
	Levels  map[zapcore.Level]LevelSamplingConfig `koanf:"levels"`
}

// LevelSamplingConfig defines sampling rate per level.
type LevelSamplingConfig struct {
	Initial    int `koanf:"initial"`
	Thereafter int `koanf:"thereafter"`
}

// CallerConfig controls caller information in logs.
type CallerConfig struct {
	Enabled bool `koanf:"enabled"`
	Skip    int  `koanf:"skip"`
}

// StacktraceConfig controls stacktrace inclusion.
type StacktraceConfig struct {
	Level zapcore.Level `koanf:"level"`
}

// NewDefaultConfig returns config with sane defaults for a CLI/library
// process logging to stdout.
func NewDefaultConfig() *Config {
	return &Config{
		Level:  zapcore.InfoLevel,
		Format: "json",
		Sampling: SamplingConfig{
			Enabled: true,
			Tick:    config.Duration(1_000_000_000), // 1s
			Levels:  DefaultLevelSamplingConfig(),
		},
		Caller: CallerConfig{
			Enabled: true,
			Skip:    1,
		},
		Stacktrace: StacktraceConfig{
			Level: zapcore.ErrorLevel,
		},
		Fields: map[string]string{
			"service": "chatvault",
		},
	}
}

// DefaultLevelSamplingConfig returns default sampling config by level.
func DefaultLevelSamplingConfig() map[zapcore.Level]LevelSamplingConfig {
	return map[zapcore.Level]LevelSamplingConfig{
		TraceLevel:         {Initial: 1, Thereafter: 0},
		zapcore.DebugLevel: {Initial: 10, Thereafter: 0},
		zapcore.InfoLevel:  {Initial: 100, Thereafter: 10},
		zapcore.WarnLevel:  {Initial: 100, Thereafter: 100},
		// Error+ never sampled
	}
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("format must be 'json' or 'console', got %q", c.Format)
	}
	if c.Sampling.Enabled && c.Sampling.Tick.Duration() <= 0 {
		return fmt.Errorf("sampling tick must be > 0 when sampling enabled")
	}
	if c.Caller.Enabled && c.Caller.Skip < 0 {
		return fmt.Errorf("caller skip must be >= 0, got %d", c.Caller.Skip)
	}

	if c.Fields != nil {
		for k, v := range c.Fields {
			if k == "" {
				return fmt.Errorf("field key cannot be empty")
			}
			if v == "" {
				return fmt.Errorf("field %q has empty value", k)
			}
		}
	}

	return nil
}
