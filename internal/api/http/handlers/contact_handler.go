package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// ContactHandler exposes the contact form and admin message view.
type ContactHandler struct {
	contact *service.ContactService
}

// NewContactHandler constructs the handler.
func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Send handles POST /auth/sendMessage.
func (h *ContactHandler) Send(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.contact.Send(c.UserContext(), req.Name, req.Email, req.Message); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"error":   false,
		"message": "message successfully sent to the admin",
	})
}

// Messages handles GET /auth/getMessages.
func (h *ContactHandler) Messages(c *fiber.Ctx) error {
	messages, err := h.contact.Messages(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"error":   false,
		"message": "messages fetched successfully",
		"data":    messages,
	})
}
