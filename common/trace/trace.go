// Package trace provides command ID generation and context propagation so
// every log line and audit row of one chat turn can be correlated.
package trace

import (
	"context"

	"github.com/google/uuid"
)

// traceKey is the unexported context key used to store the command ID.
type traceKey struct{}

// GenerateID returns a fresh command ID ("c_" + uuid).
func GenerateID() string {
	return "c_" + uuid.NewString()
}

// WithTraceID returns a child context carrying the given command ID.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

// FromContext extracts the command ID from ctx, returning "" if absent.
func FromContext(ctx context.Context) string {
	if v, ok := ctx.Value(traceKey{}).(string); ok {
		return v
	}
	return ""
}

// Ensure returns ctx unchanged when it already carries an ID, otherwise a
// child context with a newly generated one. The effective ID is returned too.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); id != "" {
		return ctx, id
	}
	id := GenerateID()
	return WithTraceID(ctx, id), id
}
