package domain

import "time"

// User models a registered account. Records are created at registration and
// never updated or deleted afterwards; there is no change-password flow.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
