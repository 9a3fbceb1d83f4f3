package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

//nolint:gochecknoglobals // Context key.
var loggerKey = contextKey{}

// FromContext returns the logger carried by ctx, or the default logger.
// Commands attach a component logger with WithComponent; code below them
// reads it back here instead of building its own.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// WithComponent returns a copy of ctx whose logger is the one in ctx
// tagged with component name.
func WithComponent(ctx context.Context, name string) context.Context {
	return WithLogger(ctx, Component(FromContext(ctx), name))
}

// WithFields returns a copy of ctx whose logger carries keyvals on every
// record, such as the path of the document being processed.
func WithFields(ctx context.Context, keyvals ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
