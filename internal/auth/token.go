package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single rejection for every verification failure.
// Malformed, tampered and expired tokens are indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager handles issuing and validating JWT session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. Sessions last a fixed number of
// days from issuance; there is no per-token secret rotation.
func NewTokenManager(secret string, ttlDays int) *TokenManager {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlDays) * 24 * time.Hour}
}

// Claims describes the JWT payload.
type Claims struct {
	PrincipalID string `json:"id"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// Generate builds and signs a token for the principal.
func (tm *TokenManager) Generate(principalID, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		PrincipalID: principalID,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates the token and returns its claims. Verification is pure:
// signature plus expiry, no store lookup. There is no revocation list, so
// an issued token stays valid until natural expiry.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
