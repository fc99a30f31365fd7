package logging

import (
	"go.uber.org/zap/zapcore"
)

// newSampledCore wraps core with level-aware sampling. Entries at Warn and
// below go through one sampler configured from cfg.Levels[InfoLevel];
// entries at Error and above always pass through untouched.
func newSampledCore(core zapcore.Core, cfg SamplingConfig) zapcore.Core {
	if !cfg.Enabled {
		return core
	}

	unsampled := &levelFilterCore{Core: core, minLevel: zapcore.ErrorLevel}
	sampledInput := &levelFilterCore{Core: core, maxLevel: zapcore.WarnLevel}

	infoSampling := cfg.Levels[zapcore.InfoLevel]
	sampled := zapcore.NewSamplerWithOptions(
		sampledInput,
		cfg.Tick.Duration(),
		infoSampling.Initial,
		infoSampling.Thereafter,
	)

	return zapcore.NewTee(unsampled, sampled)
}

// levelFilterCore restricts a core to a [minLevel, maxLevel] band so the
// same underlying core can be split into an always-pass-through tee leg
// and a sampled one.
type levelFilterCore struct {
	zapcore.Core
	minLevel zapcore.Level // only log >= minLevel (0 = no min)
	maxLevel zapcore.Level // only log <= maxLevel (0 = no max)
}

func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	if c.minLevel != 0 && lvl < c.minLevel {
		return false
	}
	if c.maxLevel != 0 && lvl > c.maxLevel {
		return false
	}
	return c.Core.Enabled(lvl)
}

func (c *levelFilterCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

// With creates a child logger that preserves level filtering.
func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{
		Core:     c.Core.With(fields),
		minLevel: c.minLevel,
		maxLevel: c.maxLevel,
	}
}
