package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", 30*time.Minute)

	raw, expiresAt, err := issuer.Issue("user-uuid-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("expected expiry in the future")
	}

	subject, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if subject != "user-uuid-1" {
		t.Fatalf("expected subject user-uuid-1, got %q", subject)
	}
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	raw, _, err := issuer.Issue("user-uuid-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := issuer.Verify(raw); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	issuer := NewIssuer("test-secret", 30*time.Minute)

	if _, err := issuer.Verify("not.a.token"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret", 30*time.Minute)
	other := NewIssuer("other-secret", 30*time.Minute)

	raw, _, err := other.Issue("user-uuid-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := issuer.Verify(raw); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	issuer := NewIssuer("test-secret", 30*time.Minute)

	claims := &jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := issuer.Verify(raw); !errors.Is(err, ErrTokenMissingSubject) {
		t.Fatalf("expected ErrTokenMissingSubject, got %v", err)
	}
}
