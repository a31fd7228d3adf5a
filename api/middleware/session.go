package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/everestcrafts/souvenirs-backend/api/responses"
	pkgerrors "github.com/everestcrafts/souvenirs-backend/pkg/errors"
	"github.com/everestcrafts/souvenirs-backend/pkg/logger"
)

const sessionHeader = "X-Session-Key"

// SessionManager is the slice of pkg/session.Manager the middleware needs.
type SessionManager interface {
	Ensure(ctx context.Context, key string) (string, bool, error)
}

// Session resolves the caller's browsing session. The key is read from the
// session cookie or the X-Session-Key header; a dead or missing key gets a
// fresh one minted. The resolved key is echoed back on both carriers so
// cookie-less clients can hold on to it.
func Session(mgr SessionManager, cookieName string, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			provided := r.Header.Get(sessionHeader)
			if provided == "" {
				if cookie, err := r.Cookie(cookieName); err == nil {
					provided = cookie.Value
				}
			}

			key, minted, err := mgr.Ensure(ctx, provided)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session store unavailable"))
				return
			}

			if minted || provided != key {
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    key,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(sessionHeader, key)

			ctx = WithSessionKey(ctx, key)
			if logg != nil {
				ctx = logg.WithSessionKey(ctx, key)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
