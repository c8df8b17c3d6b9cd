package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/webstack/auth-system/internal/core/domain"
)

type stubSessionStore struct {
	sessions map[string]domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, sess domain.Session) error {
	s.sessions[sess.SessionID] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	clone := sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func testSessionManager(store *stubSessionStore, repo *stubUserRepo, ttl time.Duration) *SessionManager {
	return NewSessionManager(store, repo, ttl, zerolog.Nop())
}

func TestSessionManager_EstablishAndResolve(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	user := registerUser(t, repo, "alice", "password123")
	m := testSessionManager(store, repo, time.Hour)

	sess, err := m.Establish(context.Background(), user)
	if err != nil {
		t.Fatalf("Establish returned error: %v", err)
	}
	if sess.SessionID == "" {
		t.Fatalf("expected a session id")
	}
	if sess.UserID != user.ID {
		t.Fatalf("session bound to %q, want %q", sess.UserID, user.ID)
	}
	if time.Until(sess.ExpiresAt) <= 0 {
		t.Fatalf("expiry must be in the future")
	}

	resolved, err := m.Resolve(context.Background(), sess.SessionID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved == nil || resolved.Username != "alice" {
		t.Fatalf("unexpected resolved user: %+v", resolved)
	}
}

func TestSessionManager_UniqueSessionIDs(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	user := registerUser(t, repo, "alice", "password123")
	m := testSessionManager(store, repo, time.Hour)

	s1, err := m.Establish(context.Background(), user)
	if err != nil {
		t.Fatalf("Establish returned error: %v", err)
	}
	s2, err := m.Establish(context.Background(), user)
	if err != nil {
		t.Fatalf("Establish returned error: %v", err)
	}
	if s1.SessionID == s2.SessionID {
		t.Fatalf("expected fresh ids per session")
	}
}

func TestSessionManager_TerminateThenResolve(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	user := registerUser(t, repo, "alice", "password123")
	m := testSessionManager(store, repo, time.Hour)

	sess, err := m.Establish(context.Background(), user)
	if err != nil {
		t.Fatalf("Establish returned error: %v", err)
	}
	if u, _ := m.Resolve(context.Background(), sess.SessionID); u == nil {
		t.Fatalf("session should resolve before termination")
	}

	if err := m.Terminate(context.Background(), sess.SessionID); err != nil {
		t.Fatalf("Terminate returned error: %v", err)
	}

	resolved, err := m.Resolve(context.Background(), sess.SessionID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved != nil {
		t.Fatalf("terminated session must not resolve, got %+v", resolved)
	}

	// Terminating again is not an error.
	if err := m.Terminate(context.Background(), sess.SessionID); err != nil {
		t.Fatalf("repeat Terminate returned error: %v", err)
	}
}

func TestSessionManager_ExpiredSession(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	user := registerUser(t, repo, "alice", "password123")
	m := testSessionManager(store, repo, 24*time.Hour)

	sess, err := m.Establish(context.Background(), user)
	if err != nil {
		t.Fatalf("Establish returned error: %v", err)
	}

	// One hour in: still valid.
	aged := store.sessions[sess.SessionID]
	aged.ExpiresAt = time.Now().UTC().Add(23 * time.Hour)
	store.sessions[sess.SessionID] = aged
	if u, _ := m.Resolve(context.Background(), sess.SessionID); u == nil {
		t.Fatalf("unexpired session must resolve")
	}

	// Past the 24h max age: gone.
	aged.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	store.sessions[sess.SessionID] = aged
	resolved, err := m.Resolve(context.Background(), sess.SessionID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved != nil {
		t.Fatalf("expired session must not resolve")
	}
	if _, still := store.sessions[sess.SessionID]; still {
		t.Fatalf("expired session should be reaped on resolve")
	}
}

func TestSessionManager_StaleUserReference(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	user := registerUser(t, repo, "alice", "password123")
	m := testSessionManager(store, repo, time.Hour)

	sess, err := m.Establish(context.Background(), user)
	if err != nil {
		t.Fatalf("Establish returned error: %v", err)
	}

	repo.remove("alice")

	resolved, err := m.Resolve(context.Background(), sess.SessionID)
	if err != nil {
		t.Fatalf("stale reference must not fail hard: %v", err)
	}
	if resolved != nil {
		t.Fatalf("session for a deleted user must resolve to no user")
	}
}

func TestSessionManager_EmptyAndUnknownID(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	m := testSessionManager(store, repo, time.Hour)

	if u, err := m.Resolve(context.Background(), ""); err != nil || u != nil {
		t.Fatalf("empty id: got (%v, %v), want (nil, nil)", u, err)
	}
	if u, err := m.Resolve(context.Background(), "nope"); err != nil || u != nil {
		t.Fatalf("unknown id: got (%v, %v), want (nil, nil)", u, err)
	}
	if err := m.Terminate(context.Background(), ""); err != nil {
		t.Fatalf("terminating the empty session id must be a no-op: %v", err)
	}
}
