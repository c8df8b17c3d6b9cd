package ports

import (
	"context"

	"github.com/webstack/auth-system/internal/core/domain"
)

// SessionStore persists sessions keyed by their opaque identifier.
// Get returns (nil, nil) for a missing or expired session; Delete is
// idempotent.
type SessionStore interface {
	Create(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
