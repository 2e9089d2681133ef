package session

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const sessionKey contextKey = "session"

// Session carries the per-request identity. Favorites are the only thing
// scoped by it; it is not a security boundary.
type Session struct {
	UserID uuid.UUID
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey).(Session)
	return s
}

func UserID(ctx context.Context) uuid.UUID {
	return FromContext(ctx).UserID
}
