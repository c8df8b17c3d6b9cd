package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: value})
	return req
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret", false)

	cookie := codec.Issue("session-id-1", time.Now().Add(time.Hour))
	if cookie.Name != Name {
		t.Fatalf("unexpected cookie name: %s", cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if cookie.Secure {
		t.Fatalf("Secure must be off outside production")
	}
	if cookie.MaxAge <= 0 {
		t.Fatalf("expected positive max age, got %d", cookie.MaxAge)
	}

	id, ok := NewCodec("secret", false).Decode(requestWithCookie(cookie.Value))
	if !ok {
		t.Fatalf("expected signed cookie to decode")
	}
	if id != "session-id-1" {
		t.Fatalf("decoded id %q, want session-id-1", id)
	}
}

func TestCodec_SecureInProduction(t *testing.T) {
	cookie := NewCodec("secret", true).Issue("sid", time.Now().Add(time.Hour))
	if !cookie.Secure {
		t.Fatalf("Secure must be on in production")
	}
}

func TestCodec_RejectsTampering(t *testing.T) {
	codec := NewCodec("secret", false)
	cookie := codec.Issue("session-id-1", time.Now().Add(time.Hour))

	// Swap the session id while keeping the signature.
	_, sig, _ := strings.Cut(cookie.Value, ".")
	if _, ok := codec.Decode(requestWithCookie("other-session." + sig)); ok {
		t.Fatalf("tampered id must not decode")
	}

	// Signature under a different secret.
	forged := NewCodec("wrong-secret", false).Issue("session-id-1", time.Now().Add(time.Hour))
	if _, ok := codec.Decode(requestWithCookie(forged.Value)); ok {
		t.Fatalf("cookie signed with another secret must not decode")
	}

	// Structurally invalid values.
	for _, v := range []string{"", "no-signature", ".sig-only"} {
		if _, ok := codec.Decode(requestWithCookie(v)); ok {
			t.Fatalf("malformed value %q must not decode", v)
		}
	}
}

func TestCodec_MissingCookie(t *testing.T) {
	codec := NewCodec("secret", false)
	if _, ok := codec.Decode(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatalf("absent cookie must not decode")
	}
}

func TestCodec_Clear(t *testing.T) {
	cookie := NewCodec("secret", false).Clear()
	if cookie.MaxAge != -1 || cookie.Value != "" {
		t.Fatalf("clear cookie must expire immediately: %+v", cookie)
	}
}
