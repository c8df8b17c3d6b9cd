package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/webstack/auth-system/internal/api/sessioncookie"
	"github.com/webstack/auth-system/internal/core/ports"
)

// ContextUserKey is the echo context key under which the resolved user is
// stored. Absent or unresolvable sessions leave the key unset.
const ContextUserKey = "auth_user"

// Session resolves the session cookie into a user on every request.
// A missing, tampered, expired, or stale session is simply "no user";
// only a session-store failure propagates, surfacing as a 500.
func Session(sessions ports.SessionManager, codec *sessioncookie.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, ok := codec.Decode(c.Request())
			if !ok {
				return next(c)
			}

			user, err := sessions.Resolve(c.Request().Context(), sessionID)
			if err != nil {
				return err
			}
			if user != nil {
				c.Set(ContextUserKey, user)
			}
			return next(c)
		}
	}
}
