package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/webstack/auth-system/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore persists sessions in Redis. Expiry rides on the key TTL, so
// an expired session simply stops existing.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *SessionStore) Create(ctx context.Context, sess domain.Session) error {
	if sess.SessionID == "" || sess.UserID == "" {
		return fmt.Errorf("session store: missing session_id or user_id")
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session store: expires_at must be in the future")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session store: marshal: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sess.SessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("session store: set: %w", err)
	}
	return nil
}

// Get returns (nil, nil) when the session does not exist or its TTL ran out.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session store: get: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("session store: unmarshal: %w", err)
	}
	return &sess, nil
}

// Delete removes the session; deleting a missing key is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session store: delete: %w", err)
	}
	return nil
}
