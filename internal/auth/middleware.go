package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

const claimsKey = "auth_claims"

// Middleware validates bearer tokens before protected handlers run. The
// gate is stateless: it trusts verified claims without a store lookup, so
// a principal deleted after issuance stays authenticated until expiry.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the bearer gate.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("authorization token missing or invalid")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("authorization token missing or invalid")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the verified claims for the request.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
