package middleware

import (
	"context"

	"github.com/edulane/trailguard/internal/domain"
)

type contextKey string

const actorContextKey contextKey = "actor"

// WithActor injects the authenticated actor into the context.
func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext returns the actor from the context, or nil for
// anonymous requests.
func ActorFromContext(ctx context.Context) *domain.Actor {
	v := ctx.Value(actorContextKey)
	if v == nil {
		return nil
	}
	a, _ := v.(*domain.Actor)
	return a
}
