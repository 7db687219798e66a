package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// AuthHandler exposes the admin session endpoints.
type AuthHandler struct {
	sessions *service.SessionService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	_, token, _, err := h.sessions.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"error":   false,
		"message": "successfully registered as admin",
		"data":    dto.TokenData{Token: token},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	_, token, _, err := h.sessions.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"error":   false,
		"message": "successfully logged in",
		"data":    dto.TokenData{Token: token},
	})
}

// ChangePassword handles POST /auth/forgetPassword.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.sessions.ChangePassword(c.UserContext(), req.Username, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"error":   false,
		"message": "password changed successfully",
	})
}

// Verify handles GET /auth/verify. The bearer gate has already validated
// the token by the time this runs.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"valid": true})
}
