package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fitcoach/fitcoach-be/internal/auth"
	"github.com/fitcoach/fitcoach-be/internal/http/respond"
	"github.com/fitcoach/fitcoach-be/internal/logging"
	"github.com/fitcoach/fitcoach-be/internal/session"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserID returns the authenticated user id stored by Auth, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// Auth extracts and verifies the bearer token, then stores the user id in the
// request context. Each verification failure is logged distinctly but maps to
// one generic unauthenticated response.
func Auth(svc *session.Service, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(header, bearerPrefix) {
			respond.Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := svc.Authenticate(r.Context(), strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			var ierr *session.InternalError
			if errors.As(err, &ierr) {
				respond.Internal(w, ierr.CorrelationID)
				return
			}
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				logging.Infow("auth rejected", "reason", "expired", "path", r.URL.Path)
			case errors.Is(err, auth.ErrTokenInvalidSignature):
				logging.Infow("auth rejected", "reason", "bad signature", "path", r.URL.Path)
			case errors.Is(err, auth.ErrTokenRevoked):
				logging.Infow("auth rejected", "reason", "revoked", "path", r.URL.Path)
			default:
				logging.Infow("auth rejected", "reason", "malformed", "path", r.URL.Path)
			}
			respond.Error(w, http.StatusUnauthorized, "invalid authentication credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}
