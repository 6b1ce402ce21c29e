package auth

import (
	"strings"
	"testing"
	"time"
)

func TestIssueAndResolve(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}

	token, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	sub, err := tokens.Subject(token)
	if err != nil {
		t.Fatalf("Subject: %v", err)
	}
	if sub != "user-1" {
		t.Fatalf("expected subject user-1, got %q", sub)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tokens, err := NewTokens("test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	// NewTokens clamps non-positive TTLs, so build one expired by hand.
	expired := &Tokens{secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := expired.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tokens.Subject(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}

	token, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]
	if _, err := tokens.Subject(tampered); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	other, err := NewTokens("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	if _, err := other.Subject(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("SecurePass123!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "SecurePass123!" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !CheckPassword("SecurePass123!", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword("WrongPass123!", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}
