package telemetry

import (
	"context"

	"github.com/google/uuid"
)

type turnIDKey struct{}

// WithTurnID returns a child context carrying id.
func WithTurnID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, turnIDKey{}, id)
}

// TurnIDFromContext returns the turn ID from ctx; "", false when missing or empty.
func TurnIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(turnIDKey{}).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// NewTurn returns a context carrying a fresh turn ID, and that ID.
func NewTurn(ctx context.Context) (context.Context, string) {
	id := "turn-" + uuid.NewString()
	return WithTurnID(ctx, id), id
}
