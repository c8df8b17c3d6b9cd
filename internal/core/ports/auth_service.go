package ports

import (
	"context"

	"github.com/webstack/auth-system/internal/core/domain"
)

// RegistrationService creates new accounts.
type RegistrationService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
}

// SessionManager owns the session lifecycle: establish on login, resolve on
// each request, terminate on logout.
type SessionManager interface {
	Establish(ctx context.Context, user *domain.User) (*domain.Session, error)
	Resolve(ctx context.Context, sessionID string) (*domain.User, error)
	Terminate(ctx context.Context, sessionID string) error
}
