// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import (
	"context"
	"strconv"
	"strings"
)

// ActorKey is the context key for actor ID.
type ActorKey struct{}

const userActorPrefix = "user:"

// WithActorID returns a context with the actor ID embedded.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorKey{}, actorID)
}

// WithUser returns a context whose actor is the given backend user.
func WithUser(ctx context.Context, userID int) context.Context {
	return WithActorID(ctx, userActorPrefix+strconv.Itoa(userID))
}

// ActorFromContext returns the actor ID from context, or empty string if not set.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ActorKey{}).(string); ok {
		return v
	}
	return ""
}

// UserFromContext returns the backend user ID of the actor, if the actor is a user.
func UserFromContext(ctx context.Context) (int, bool) {
	actor := ActorFromContext(ctx)
	if !strings.HasPrefix(actor, userActorPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(actor, userActorPrefix))
	if err != nil {
		return 0, false
	}
	return id, true
}
