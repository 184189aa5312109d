package util

import (
	"testing"
	"time"

	"gesture_presentation_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{ID: 42, Email: "u@example.com", IsStaff: true}

	token, err := GenerateJWT(user, "roundtrip-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "roundtrip-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "u@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "u@example.com")
	}
	if !claims.IsStaff {
		t.Error("IsStaff not carried through")
	}
}

func TestJWTRejections(t *testing.T) {
	user := &model.User{ID: 1, Email: "u@example.com"}

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateJWT(user, "secret-one", time.Hour)
		if err != nil {
			t.Fatalf("GenerateJWT: %v", err)
		}
		if _, err := ParseJWT(token, "secret-two"); err == nil {
			t.Error("token signed with another key was accepted")
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateJWT(user, "secret-one", -time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT: %v", err)
		}
		if _, err := ParseJWT(token, "secret-one"); err == nil {
			t.Error("expired token was accepted")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := ParseJWT("not.a.token", "secret-one"); err == nil {
			t.Error("malformed token was accepted")
		}
	})
}
