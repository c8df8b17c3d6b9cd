package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/webstack/auth-system/internal/core/domain"
	"github.com/webstack/auth-system/internal/core/ports"
)

const StrategyLocal = "local"

// LocalStrategy authenticates against the credential store with a bcrypt
// password check. Unknown username and wrong password both come back as
// domain.ErrInvalidCredentials; the real reason is only logged at debug
// level so the UI cannot be used for username enumeration.
type LocalStrategy struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewLocalStrategy(repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *LocalStrategy {
	return &LocalStrategy{repo: repo, hasher: hasher, log: log}
}

func (s *LocalStrategy) Name() string {
	return StrategyLocal
}

func (s *LocalStrategy) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("username", username).Msg("login attempt for unknown username")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Debug().Str("username", username).Msg("login attempt with wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
