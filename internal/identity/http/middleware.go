package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/jahangeer-44/Job-Nest/pkg/httpx"
	"github.com/jahangeer-44/Job-Nest/pkg/sessionx"
	"github.com/jahangeer-44/Job-Nest/pkg/slogx"
)

type ctxKey struct{}

// UserIDFromContext returns the authenticated caller's identity placed
// there by SessionAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// SessionAuth decodes the cookie-borne session token and attaches the
// bound user identity to the request context. Expired and tampered tokens
// are treated identically: the caller is simply not authenticated.
func SessionAuth(sessions *sessionx.Issuer) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			cookie, err := r.Cookie(httpx.SessionCookieName)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "Not authenticated.")
				return
			}

			userID, err := sessions.Decode(cookie.Value)
			if err != nil {
				if !errors.Is(err, sessionx.ErrExpired) {
					log.Warn("session token rejected", "err", err)
				}
				writeError(w, http.StatusUnauthorized, "Not authenticated.")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, ctxKey{}, userID)))
		})
	}
}
