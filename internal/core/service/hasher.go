package service

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes passwords with bcrypt. The cost is the tunable work
// factor; bcrypt embeds a per-call random salt in the hash it produces.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. A cost outside
// bcrypt's valid range falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify recomputes the hash using the salt embedded in hash and compares.
// bcrypt's comparison does not leak where the first differing byte is.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
