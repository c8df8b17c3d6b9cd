package service

import (
	"context"
	"fmt"
	"time"

	"github.com/webstack/auth-system/internal/core/domain"
	"github.com/webstack/auth-system/internal/core/ports"
)

// MinPasswordLength is the registration password policy.
const MinPasswordLength = 8

// RegistrationService creates accounts: validate, hash, create — in that
// order. Username uniqueness is left to the repository's atomic insert.
type RegistrationService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
}

func NewRegistrationService(repo ports.UserRepository, hasher ports.PasswordHasher) *RegistrationService {
	return &RegistrationService{repo: repo, hasher: hasher}
}

func (s *RegistrationService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}
