package service

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "password123" {
		t.Fatalf("expected hash to differ from plaintext")
	}
	if !h.Verify("password123", hash) {
		t.Fatalf("expected verification of correct password to succeed")
	}
	if h.Verify("password124", hash) {
		t.Fatalf("expected verification of wrong password to fail")
	}
}

func TestBcryptHasher_SaltedPerCall(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	h1, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for the same plaintext (random salt)")
	}
	if !h.Verify("password123", h1) || !h.Verify("password123", h2) {
		t.Fatalf("both hashes must verify against the original plaintext")
	}
}

func TestBcryptHasher_CostFallback(t *testing.T) {
	h := NewBcryptHasher(99)

	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost returned error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}
}
