package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/calebmoss/promptvault/internal/session"
)

// Identity resolves the current user from the X-User-ID header, falling
// back to the configured default. It only scopes favorites; there is no
// authentication here and none is intended.
func Identity(fallback uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := fallback
			if raw := r.Header.Get("X-User-ID"); raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					userID = id
				}
			}
			ctx := session.WithSession(r.Context(), session.Session{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
