package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/storefront-service/internal/domain"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", 7)

	token, expiresAt, err := tm.Generate("principal-123", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	// Fixed 7-day lifetime from issuance.
	wantExpiry := time.Now().Add(7 * 24 * time.Hour)
	if expiresAt.Before(wantExpiry.Add(-time.Minute)) || expiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Fatalf("expiry not ~7 days out: %v", expiresAt)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.PrincipalID != "principal-123" {
		t.Fatalf("principal id mismatch: got %q", claims.PrincipalID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("right-secret", 7)
	token, _, err := tm.Generate("p1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	other := NewTokenManager("wrong-secret", 7)
	if _, err := other.Parse(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	// Sign with the same secret and method but an expiry in the past.
	secret := "secret"
	claims := &Claims{
		PrincipalID: "p1",
		Role:        domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	tm := NewTokenManager(secret, 7)
	if _, err := tm.Parse(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("k", 7)
	if _, err := tm.Parse("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestParse_CollapsesFailureModes(t *testing.T) {
	t.Parallel()

	// Expired and tampered tokens must be indistinguishable to callers.
	tm := NewTokenManager("secret-a", 7)
	tampered, _, err := NewTokenManager("secret-b", 7).Generate("p1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, tamperedErr := tm.Parse(tampered)
	_, malformedErr := tm.Parse("garbage")
	if tamperedErr != malformedErr {
		t.Fatalf("failure modes leak: %v vs %v", tamperedErr, malformedErr)
	}
}
