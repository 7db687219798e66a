package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// ProductsHandler exposes catalog endpoints.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs the handler.
func NewProductsHandler(catalog *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

// Upload handles POST /auth/uploadProduct.
func (h *ProductsHandler) Upload(c *fiber.Ctx) error {
	var req dto.UploadProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	product, err := h.catalog.Create(c.UserContext(), service.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURLs:   req.ImageURLs,
		Stock:       req.Stock,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"error":   false,
		"message": "product added successfully",
		"product": product,
	})
}

// ListAll handles GET /auth/getAllProducts. An empty catalog is a valid
// zero-count listing, not a 404.
func (h *ProductsHandler) ListAll(c *fiber.Ctx) error {
	products, err := h.catalog.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"error":   false,
		"message": "products fetched successfully",
		"data": fiber.Map{
			"count":    len(products),
			"products": products,
		},
	})
}

// Edit handles PUT /auth/editProduct.
func (h *ProductsHandler) Edit(c *fiber.Ctx) error {
	var req dto.EditProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	product, err := h.catalog.Update(c.UserContext(), req.ProductID, repository.ProductPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURLs:   req.ImageURLs,
		Stock:       req.Stock,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"error":   false,
		"message": "product updated successfully",
		"product": product,
	})
}

// Delete handles DELETE /auth/deleteProduct/:productId.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	productID, err := h.catalog.Delete(c.UserContext(), c.Params("productId"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"error":     false,
		"message":   "product deleted successfully",
		"productId": productID,
	})
}
