package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/metrics"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

// Guards never answer with an error page: a refused request is redirected
// with 303 See Other so that a rejected POST turns into a GET.

// RequireAuth lets the request through only when the session holds a token.
func RequireAuth(loginPath string) echo.MiddlewareFunc {
	return guard("auth", loginPath, func(s *domain.Session) bool {
		return s.Authenticated()
	})
}

// AnonymousOnly keeps logged-in users away from the login and register pages.
func AnonymousOnly(homePath string) echo.MiddlewareFunc {
	return guard("anonymous", homePath, func(s *domain.Session) bool {
		return !s.Authenticated()
	})
}

// RequireRole enforces role-based access. A session without a role is
// refused like any role outside allowedRoles.
func RequireRole(homePath string, allowedRoles ...string) echo.MiddlewareFunc {
	return guard("role", homePath, func(s *domain.Session) bool {
		return s.HasRole(allowedRoles...)
	})
}

// RequireKnownRole refuses sessions whose role is not one of the console
// roles, such as a token fallback that carried no role claim.
func RequireKnownRole(homePath string) echo.MiddlewareFunc {
	return guard("role", homePath, func(s *domain.Session) bool {
		return domain.ValidRole(s.Role())
	})
}

func guard(name, target string, allow func(*domain.Session) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if allow(domain.SessionFromContext(c.Request().Context())) {
				return next(c)
			}
			metrics.GuardRedirectsTotal.WithLabelValues(name).Inc()
			return c.Redirect(http.StatusSeeOther, target)
		}
	}
}
