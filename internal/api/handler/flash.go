package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// Flash messages are one-time notifications surfaced after a redirect.
// They ride in short-lived cookies that the next page render consumes and
// clears, so they survive exactly one redirect hop.
const (
	flashErrorCookie   = "flash_error"
	flashSuccessCookie = "flash_success"

	flashMaxAge = 300 // seconds; a flash that is never read should not linger
)

func setFlash(c echo.Context, name, message string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
	})
}

func flashError(c echo.Context, message string) {
	setFlash(c, flashErrorCookie, message)
}

func flashSuccess(c echo.Context, message string) {
	setFlash(c, flashSuccessCookie, message)
}

// popFlash reads and clears the named flash cookie.
func popFlash(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil || cookie.Value == "" {
		return ""
	}

	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}
