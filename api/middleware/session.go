package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

type controllerKey struct{}

// Session resolves the qrgen_session cookie to a Controller, issuing a new
// session id when the cookie is missing or malformed.
func Session(sessions *generator.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(constant.SessionCookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = cookie.Value
				}
			}
			if sessionID == "" {
				sessionID = uuid.New().String()
				http.SetCookie(w, &http.Cookie{
					Name:     constant.SessionCookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := appLogger.WithSessionID(r.Context(), sessionID)
			ctrl := sessions.Get(ctx, sessionID)
			ctx = WithController(ctx, ctrl)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Controller returns the session controller attached by Session
func Controller(ctx context.Context) (*generator.Controller, bool) {
	ctrl, ok := ctx.Value(controllerKey{}).(*generator.Controller)
	return ctrl, ok
}

// WithController attaches ctrl to ctx, for handlers invoked without Session
func WithController(ctx context.Context, ctrl *generator.Controller) context.Context {
	return context.WithValue(ctx, controllerKey{}, ctrl)
}
