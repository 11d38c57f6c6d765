package runctx

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const runIDKey contextKey = "runID"

// WithRunID returns a new context that carries the invocation's run ID.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext retrieves the invocation's run ID from the context, if any.
func RunIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	value := ctx.Value(runIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// RunIDString renders the run ID for log lines, or "-" when the context has
// none.
func RunIDString(ctx context.Context) string {
	id, ok := RunIDFromContext(ctx)
	if !ok {
		return "-"
	}
	return id.String()
}
