package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webstack/auth-system/internal/api/metrics"
	"github.com/webstack/auth-system/internal/api/sessioncookie"
	"github.com/webstack/auth-system/internal/core/domain"
	"github.com/webstack/auth-system/internal/core/ports"
)

// User-facing flash texts. Unknown username and wrong password share one
// message so the login form cannot be used to enumerate accounts.
const (
	msgInvalidCredentials = "Invalid username or password"
	msgInvalidForm        = "Invalid form submission"
	msgAccountExists      = "An account with that username already exists"
	msgRegistered         = "Registration successful, you can now sign in"
	msgSignedOut          = "You have been signed out"
)

// AuthHandler renders the auth pages and drives the login, registration,
// and logout flows. All expected failures become a flash message plus a
// redirect; anything else propagates to the central error handler.
type AuthHandler struct {
	strategy  ports.Strategy
	registrar ports.RegistrationService
	sessions  ports.SessionManager
	cookies   *sessioncookie.Codec
}

func NewAuthHandler(strategy ports.Strategy, registrar ports.RegistrationService, sessions ports.SessionManager, cookies *sessioncookie.Codec) *AuthHandler {
	return &AuthHandler{
		strategy:  strategy,
		registrar: registrar,
		sessions:  sessions,
		cookies:   cookies,
	}
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type registerForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required,min=8"`
}

type pageData struct {
	Title    string
	Username string
	Error    string
	Success  string
}

// Home handles GET /. Unauthenticated visitors are sent to the login form.
func (h *AuthHandler) Home(c echo.Context) error {
	user, ok := ctxUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Render(http.StatusOK, "home", pageData{
		Title:    "Home",
		Username: user.Username,
	})
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login", pageData{
		Title:   "Sign in",
		Error:   popFlash(c, flashErrorCookie),
		Success: popFlash(c, flashSuccessCookie),
	})
}

// Login handles POST /login: authenticate, establish a session, hand the
// identifier to the client as a signed cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		flashError(c, msgInvalidCredentials)
		return c.Redirect(http.StatusFound, "/login")
	}

	user, err := h.strategy.Authenticate(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			flashError(c, msgInvalidCredentials)
			return c.Redirect(http.StatusFound, "/login")
		}
		return err
	}

	sess, err := h.sessions.Establish(c.Request().Context(), user)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookies.Issue(sess.SessionID, sess.ExpiresAt))
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.SessionsEstablishedTotal.Inc()
	return c.Redirect(http.StatusFound, "/")
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register", pageData{
		Title: "Create account",
		Error: popFlash(c, flashErrorCookie),
	})
}

// Register handles POST /register: validate, create the account, send the
// new user to the login form.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		flashError(c, msgInvalidForm)
		return c.Redirect(http.StatusFound, "/register")
	}

	if err := c.Validate(&form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		flashError(c, err.Error())
		return c.Redirect(http.StatusFound, "/register")
	}

	if _, err := h.registrar.Register(c.Request().Context(), form.Username, form.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			flashError(c, msgAccountExists)
			return c.Redirect(http.StatusFound, "/register")
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			flashError(c, msgInvalidForm)
			return c.Redirect(http.StatusFound, "/register")
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	flashSuccess(c, msgRegistered)
	return c.Redirect(http.StatusFound, "/login")
}

// Logout handles GET /logout: destroy the session server-side and expire
// the cookie. Logging out without a session is harmless.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sessionID, ok := h.cookies.Decode(c.Request()); ok {
		if err := h.sessions.Terminate(c.Request().Context(), sessionID); err != nil {
			return err
		}
		metrics.SessionsTerminatedTotal.Inc()
	}

	c.SetCookie(h.cookies.Clear())
	flashSuccess(c, msgSignedOut)
	return c.Redirect(http.StatusFound, "/login")
}
