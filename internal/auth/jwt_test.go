package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/mmynk/rentkeeper/internal/models"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	owner := &models.Owner{ID: 7, Email: "a@x.com"}

	t.Run("round trip", func(t *testing.T) {
		token, err := m.Generate(owner)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.OwnerID != 7 {
			t.Errorf("OwnerID: got %d, want 7", claims.OwnerID)
		}
		if claims.Subject != "7" {
			t.Errorf("Subject: got %q, want %q", claims.Subject, "7")
		}
	})

	t.Run("empty token", func(t *testing.T) {
		if _, err := m.Validate(""); !errors.Is(err, ErrMissingToken) {
			t.Errorf("expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		token, err := other.Generate(owner)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.Generate(owner)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
