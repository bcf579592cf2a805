package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/identitylab/user-api/internal/core/domain"
	"github.com/identitylab/user-api/internal/core/ports"
	"github.com/identitylab/user-api/internal/metrics"
)

// UserContextKey is where the authenticated, store-resolved user is kept in
// the echo context.
const UserContextKey = "auth_user"

// Authenticate validates the bearer token and resolves the full current user
// from the repository. The token carries only the id: role and email come
// from the store on every request, so a role change takes effect immediately
// even for tokens issued before it.
func Authenticate(tokens ports.TokenIssuer, repo ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthnFailuresTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthnFailuresTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claim, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.AuthnFailuresTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// A valid signature is not enough: the account must still
			// exist. A deleted user holds a cryptographically valid
			// token for an identity that no longer is. Only that case
			// is an authentication failure; a store fault propagates
			// unchanged to the error handler.
			user, err := repo.FindByID(c.Request().Context(), claim.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthnFailuresTotal.Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
