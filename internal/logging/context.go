package logging

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ContextFields extracts correlation data from context.
func ContextFields(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 1)

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request.id", requestID))
	}

	return fields
}

type requestCtxKey struct{}

const maxIDLen = 128

// validateID validates a request ID.
func validateID(id, name string) error {
	if id == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if !utf8.ValidString(id) {
		return fmt.Errorf("%s contains invalid UTF-8", name)
	}
	if len(id) > maxIDLen {
		return fmt.Errorf("%s exceeds max length %d", name, maxIDLen)
	}
	return nil
}

// RequestIDFromContext extracts request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	if r, ok := ctx.Value(requestCtxKey{}).(string); ok {
		return r
	}
	return ""
}

// WithRequestID adds a request ID to context, identifying one CLI
// invocation or library call for correlating its log lines.
// Panics if requestID is empty or too long.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if err := validateID(requestID, "requestID"); err != nil {
		panic(fmt.Sprintf("logging: %v", err))
	}
	return context.WithValue(ctx, requestCtxKey{}, requestID)
}

// loggerCtxKey is the context key for Logger.
type loggerCtxKey struct{}

// WithLogger stores logger in context.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext retrieves logger from context.
// Returns a default nop logger if not found.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{zap: zap.NewNop(), config: NewDefaultConfig()}
}
