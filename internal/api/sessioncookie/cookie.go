// Package sessioncookie issues and reads the session cookie. The cookie
// value is the opaque session identifier plus an HMAC-SHA256 signature under
// the session-signing secret, so a tampered cookie never reaches the
// session store.
package sessioncookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

const Name = "auth_session"

// Codec signs outgoing session cookies and verifies incoming ones.
type Codec struct {
	secret []byte
	secure bool
}

// NewCodec creates a codec keyed by secret. secure controls the cookie's
// Secure flag and should be true only in production-like deployments.
func NewCodec(secret string, secure bool) *Codec {
	return &Codec{secret: []byte(secret), secure: secure}
}

// Issue builds the session cookie for the given session identifier.
func (c *Codec) Issue(sessionID string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    sessionID + "." + c.sign(sessionID),
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Clear builds an expired cookie that removes the session cookie from the
// client.
func (c *Codec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Decode extracts the session identifier from the request cookie. It
// returns ("", false) when the cookie is absent, malformed, or fails
// signature verification.
func (c *Codec) Decode(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	id, sig, ok := strings.Cut(cookie.Value, ".")
	if !ok || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(id))) {
		return "", false
	}
	return id, true
}

func (c *Codec) sign(sessionID string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(sessionID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
