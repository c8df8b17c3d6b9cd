package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/webstack/auth-system/internal/api/sessioncookie"
	"github.com/webstack/auth-system/internal/core/domain"
)

type stubSessionManager struct {
	resolveFn func(ctx context.Context, sessionID string) (*domain.User, error)
}

func (s *stubSessionManager) Establish(_ context.Context, _ *domain.User) (*domain.Session, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSessionManager) Resolve(ctx context.Context, sessionID string) (*domain.User, error) {
	return s.resolveFn(ctx, sessionID)
}

func (s *stubSessionManager) Terminate(_ context.Context, _ string) error {
	return nil
}

func runSession(t *testing.T, sessions *stubSessionManager, codec *sessioncookie.Codec, req *http.Request) (*domain.User, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	err := Session(sessions, codec)(func(c echo.Context) error {
		seen, _ = c.Get(ContextUserKey).(*domain.User)
		return nil
	})(c)
	return seen, err
}

func TestSession_ResolvesUser(t *testing.T) {
	codec := sessioncookie.NewCodec("secret", false)
	sessions := &stubSessionManager{
		resolveFn: func(_ context.Context, sessionID string) (*domain.User, error) {
			if sessionID != "sid-1" {
				t.Fatalf("unexpected session id: %s", sessionID)
			}
			return &domain.User{ID: "u1", Username: "alice"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(codec.Issue("sid-1", time.Now().Add(time.Hour)))

	user, err := runSession(t, sessions, codec, req)
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("expected alice in context, got %+v", user)
	}
}

func TestSession_NoCookie(t *testing.T) {
	codec := sessioncookie.NewCodec("secret", false)
	sessions := &stubSessionManager{
		resolveFn: func(_ context.Context, _ string) (*domain.User, error) {
			t.Fatalf("resolve must not be called without a cookie")
			return nil, nil
		},
	}

	user, err := runSession(t, sessions, codec, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected no user, got %+v", user)
	}
}

func TestSession_TamperedCookie(t *testing.T) {
	codec := sessioncookie.NewCodec("secret", false)
	sessions := &stubSessionManager{
		resolveFn: func(_ context.Context, _ string) (*domain.User, error) {
			t.Fatalf("resolve must not be called for a bad signature")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "sid-1.forged-signature"})

	user, err := runSession(t, sessions, codec, req)
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected no user, got %+v", user)
	}
}

func TestSession_StoreFailurePropagates(t *testing.T) {
	codec := sessioncookie.NewCodec("secret", false)
	storeErr := errors.New("session store down")
	sessions := &stubSessionManager{
		resolveFn: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, storeErr
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(codec.Issue("sid-1", time.Now().Add(time.Hour)))

	if _, err := runSession(t, sessions, codec, req); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}
