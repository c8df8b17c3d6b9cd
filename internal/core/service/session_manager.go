package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/webstack/auth-system/internal/core/domain"
	"github.com/webstack/auth-system/internal/core/ports"
)

const sessionIDBytes = 32 // 256 bits of entropy

// SessionManager establishes, resolves, and terminates sessions. Identity is
// carried through the store as an explicit token produced by
// serializeIdentity and turned back into a user by deserializeIdentity —
// there are no framework callbacks involved.
type SessionManager struct {
	store ports.SessionStore
	repo  ports.UserRepository
	ttl   time.Duration
	log   zerolog.Logger
}

// NewSessionManager creates a manager issuing sessions valid for ttl.
// A non-positive ttl falls back to 24 hours.
func NewSessionManager(store ports.SessionStore, repo ports.UserRepository, ttl time.Duration, log zerolog.Logger) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{store: store, repo: repo, ttl: ttl, log: log}
}

// TTL returns the session lifetime, which callers use as the cookie max age.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Establish creates a session bound to the user and returns it so the
// caller can hand the identifier to the client as a cookie.
func (m *SessionManager) Establish(ctx context.Context, user *domain.User) (*domain.Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	s := domain.Session{
		SessionID: id,
		UserID:    serializeIdentity(user),
		ExpiresAt: time.Now().UTC().Add(m.ttl),
	}

	if err := m.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return &s, nil
}

// Resolve looks up the session and turns its identity token back into a
// user. Missing, expired, and stale sessions (user gone) all yield
// (nil, nil): callers cannot tell the terminal states apart.
func (m *SessionManager) Resolve(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	s, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		return nil, nil
	}

	if s.Expired(time.Now().UTC()) {
		// The store's TTL normally reaps these; an explicit check covers
		// stores without native expiry.
		_ = m.store.Delete(ctx, sessionID)
		return nil, nil
	}

	user, err := m.deserializeIdentity(ctx, s.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Lazy invalidation: the session is stale but deleting it here is
		// not required.
		m.log.Debug().Str("user_id", s.UserID).Msg("session references a user that no longer exists")
	}
	return user, nil
}

// Terminate deletes the session. Terminating a non-existent session is not
// an error.
func (m *SessionManager) Terminate(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// serializeIdentity reduces a user to the token stored in the session.
func serializeIdentity(user *domain.User) string {
	return user.ID
}

// deserializeIdentity resolves the stored token back into a user record.
// A token pointing at a deleted user yields (nil, nil).
func (m *SessionManager) deserializeIdentity(ctx context.Context, token string) (*domain.User, error) {
	user, err := m.repo.FindByID(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve session user: %w", err)
	}
	return user, nil
}

func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
