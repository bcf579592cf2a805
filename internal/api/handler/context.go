package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identitylab/user-api/internal/api/middleware"
	"github.com/identitylab/user-api/internal/core/domain"
)

// currentUser extracts the store-resolved user injected by the Authenticate
// middleware. Its presence proves the middleware ran; handlers behind the
// guard fail closed if it did not.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
