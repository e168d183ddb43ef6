// Package contextutil carries the request or ingestion-run logger through
// context so every layer logs with the same correlation fields.
package contextutil

import (
	"context"
	"log/slog"
)

type loggerCtxKey struct{}

// LoggerKey returns the context key the logger is stored under.
func LoggerKey() any {
	return loggerCtxKey{}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// LoggerFromContext returns the logger stored in ctx, or slog.Default().
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// WithAttrs derives a logger from the one in ctx with the given attributes
// and stores it back, so callees inherit the fields.
func WithAttrs(ctx context.Context, args ...any) (context.Context, *slog.Logger) {
	logger := LoggerFromContext(ctx).With(args...)
	return WithLogger(ctx, logger), logger
}
