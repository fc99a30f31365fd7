package logging

import (
	"go.uber.org/zap/zapcore"
)

// TraceLevel is a custom level below Debug, for the per-message detail a
// provider adapter's Stream implementation would otherwise have nowhere
// to put without flooding Debug. Value: -2 (Debug is -1, Info is 0).
//
// Use for:
//   - Per-conversation/per-message parse decisions inside an adapter
//   - Raw JSON field values before normalization into internal/model
//   - Almost always filtered in production
const TraceLevel = zapcore.Level(-2)

// LevelFromString parses a string into a zapcore.Level, supporting
// "trace" in addition to the levels zapcore.Level.UnmarshalText knows.
// Used by cmd/chatvault to turn a config file's logging.level string
// into the value this package's Config.Level expects.
func LevelFromString(level string) (zapcore.Level, error) {
	if level == "trace" {
		return TraceLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}
