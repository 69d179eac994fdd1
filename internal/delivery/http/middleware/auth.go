package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

type contextKey string

const callerKey contextKey = "caller"

// SetCaller returns a context with the authenticated user set. Used by auth middleware.
func SetCaller(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, callerKey, user)
}

// CallerFromContext returns the authenticated user from the context, if present.
func CallerFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(callerKey).(*domain.User)
	return user, ok
}

// RequireAuth returns a wrapper that resolves the Bearer token into the caller's
// identity and sets it in the request context. A missing or malformed header, an
// invalid or expired token, or a token whose subject no longer exists all respond
// with 401 and do not call next.
func RequireAuth(authn domain.Authenticator, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			user, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetCaller(r.Context(), user))
			next(w, r)
		}
	}
}
