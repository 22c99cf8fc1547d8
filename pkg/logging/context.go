package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{ name string }

var (
	loggerKey    = ctxKey{"logger"}
	requestIDKey = ctxKey{"request_id"}
)

// WithLogger returns a context carrying logger. A nil logger stores Default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the context logger, or Default when there is none.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithRequestID stores id and tags the context logger with request_id.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, id)
	return withStr(ctx, "request_id", id)
}

// RequestID returns the request id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithCategory tags the context logger with a category key.
func WithCategory(ctx context.Context, category string) context.Context {
	return withStr(ctx, "category", category)
}

// WithSnippet tags the context logger with a snippet id.
func WithSnippet(ctx context.Context, id string) context.Context {
	return withStr(ctx, "snippet_id", id)
}

// WithSource tags the context logger with a source name.
func WithSource(ctx context.Context, source string) context.Context {
	return withStr(ctx, "source", source)
}

func withStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}
