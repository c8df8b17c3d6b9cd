package ports

import (
	"context"

	"github.com/webstack/auth-system/internal/core/domain"
)

// UserRepository defines the interface for credential persistence.
// Uniqueness of username is enforced by the storage layer itself so that
// concurrent registrations of the same name cannot race past a check.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
