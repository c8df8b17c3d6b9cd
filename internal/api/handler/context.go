package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/webstack/auth-system/internal/api/middleware"
	"github.com/webstack/auth-system/internal/core/domain"
)

// ctxUser extracts the user resolved by the session middleware, if any.
func ctxUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(middleware.ContextUserKey).(*domain.User)
	return user, ok && user != nil
}
