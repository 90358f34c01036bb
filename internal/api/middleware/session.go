package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

// SessionLoader resolves a session id read from the cookie.
type SessionLoader interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
}

// Session reads the session cookie and places the resolved session in the
// request context. A missing, unknown or expired session leaves the request
// anonymous; store failures are logged and treated the same way.
func Session(loader SessionLoader, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			req := c.Request()
			sess, err := loader.Load(req.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					log.Error().Err(err).Str("path", req.URL.Path).Msg("session load failed")
				}
				return next(c)
			}

			c.SetRequest(req.WithContext(domain.ContextWithSession(req.Context(), sess)))
			return next(c)
		}
	}
}
