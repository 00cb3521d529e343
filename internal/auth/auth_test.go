package auth

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", 30)

	token, err := m.CreateAccessToken("alice")
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}

	userID, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if userID != "alice" {
		t.Errorf("got subject %q, want %q", userID, "alice")
	}
}

func TestVerifyToken_Rejections(t *testing.T) {
	m := NewTokenManager("test-secret", 30)

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenManager("test-secret", -1)
		token, err := expired.CreateAccessToken("bob")
		if err != nil {
			t.Fatalf("CreateAccessToken failed: %v", err)
		}
		if _, err := m.VerifyToken(token); err == nil {
			t.Error("expected expired token to be rejected")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("different-secret", 30)
		token, err := other.CreateAccessToken("bob")
		if err != nil {
			t.Fatalf("CreateAccessToken failed: %v", err)
		}
		if _, err := m.VerifyToken(token); err == nil {
			t.Error("expected token with wrong secret to be rejected")
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := m.VerifyToken("not.a.token"); err == nil {
			t.Error("expected malformed token to be rejected")
		}
	})
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if strings.Contains(hashed, "s3cret-pass") {
		t.Error("hash contains the plain password")
	}

	if !CheckPassword("s3cret-pass", hashed) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong-pass", hashed) {
		t.Error("wrong password accepted")
	}
	if CheckPassword("s3cret-pass", "not-a-bcrypt-hash") {
		t.Error("invalid hash accepted")
	}
}
