package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/domain"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// RequireAdmin ensures the verified claims carry the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok || claims.Role != domain.RoleAdmin {
			return apperrors.NewUnauthorized("admin access required")
		}
		return c.Next()
	}
}
