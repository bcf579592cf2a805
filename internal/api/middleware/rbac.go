package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identitylab/user-api/internal/core/domain"
	"github.com/identitylab/user-api/internal/metrics"
)

// RequireRole admits the request only when the resolved user's role appears
// in the allowed set. Membership is exact: admin does not implicitly satisfy
// a user-only requirement, so routes meant for both must list both.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(UserContextKey).(*domain.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if _, ok := allowed[user.Role]; !ok {
				metrics.AuthzDenialsTotal.WithLabelValues("role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
