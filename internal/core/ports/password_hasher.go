package ports

// PasswordHasher produces and checks one-way salted password hashes.
// Hash embeds a per-call random salt in its output; Verify recomputes using
// that salt and compares in time independent of where a mismatch occurs.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
