package ports

import (
	"context"

	"github.com/webstack/auth-system/internal/core/domain"
)

// Strategy verifies a credential pair and returns the authenticated user.
// Implementations must return domain.ErrInvalidCredentials for both an
// unknown username and a wrong password so callers cannot distinguish the
// two; the internal reason may be logged but never surfaced.
//
// Only a local username/password variant exists today. The interface leaves
// room for external identity providers without callers knowing which
// variant is active.
type Strategy interface {
	// Name returns the strategy identifier (e.g. "local").
	Name() string
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}
