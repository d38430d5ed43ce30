package tracing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID carries the correlation id on inbound and outbound HTTP.
const HeaderRequestID = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "request_id"

// NewRequestID mints a correlation id.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a context carrying the given correlation id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the correlation id in ctx, or "".
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// EnsureRequestID returns ctx unchanged if it already carries an id,
// otherwise a child context with a fresh one.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if rid := RequestID(ctx); rid != "" {
		return ctx, rid
	}
	rid := NewRequestID()
	return WithRequestID(ctx, rid), rid
}

// Logger returns logger annotated with the request id in ctx, if any.
func Logger(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if rid := RequestID(ctx); rid != "" {
		return logger.With(zap.String("request_id", rid))
	}
	return logger
}

// Inject copies the request id from ctx into outbound headers.
func Inject(ctx context.Context, headers map[string]string) {
	if rid := RequestID(ctx); rid != "" {
		headers[HeaderRequestID] = rid
	}
}
