package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/infernalwolves/clan-dashboard/internal/api/middleware"
	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

// ctxUser rebuilds the caller from the claims injected by the Auth middleware.
// An empty username or role means the middleware did not run.
func ctxUser(c echo.Context) (*domain.User, error) {
	username, _ := c.Get(middleware.CtxUsername).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if username == "" || role == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	name, _ := c.Get(middleware.CtxName).(string)
	if name == "" {
		name = username
	}
	return &domain.User{Username: username, DisplayName: name, Role: role}, nil
}
