package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
	apperrors "github.com/spec-kit/storefront-service/pkg/util"
)

// CatalogCache is the optional read-through cache for the product listing.
// A nil cache disables caching entirely.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Product, bool)
	Set(ctx context.Context, products []domain.Product)
	Invalidate(ctx context.Context)
}

// ProductInput describes a product upload.
type ProductInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	ImageURLs   []string
	Stock       int
}

// CatalogService owns product inventory CRUD.
type CatalogService struct {
	products   repository.ProductRepository
	cache      CatalogCache
	dispatcher events.Dispatcher
}

// NewCatalogService constructs the service. Cache and dispatcher may be nil.
func NewCatalogService(products repository.ProductRepository, cache CatalogCache, dispatcher events.Dispatcher) *CatalogService {
	return &CatalogService{products: products, cache: cache, dispatcher: dispatcher}
}

// Create validates and persists a new product. Category is case-folded so
// category filtering stays case-insensitive.
func (s *CatalogService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Title == "" || input.Description == "" || input.Category == "" || len(input.ImageURLs) == 0 {
		return nil, apperrors.NewValidationError("please provide all the details of the product", nil)
	}
	if input.Price <= 0 {
		return nil, apperrors.NewValidationError("price must be greater than zero", nil)
	}
	if input.Stock < 0 {
		return nil, apperrors.NewValidationError("stock cannot be negative", nil)
	}

	product := &domain.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    strings.ToLower(input.Category),
		ImageURLs:   input.ImageURLs,
		Stock:       input.Stock,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.invalidate(ctx)
	s.publish(ctx, events.EventProductCreated, events.ProductEventPayload{
		ProductID: product.ID,
		Title:     product.Title,
		Category:  product.Category,
		Price:     product.Price,
	})
	return product, nil
}

// List returns the catalog newest-first. An empty catalog is a normal
// result, not an error.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.Get(ctx); ok {
			return products, nil
		}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, products)
	}
	return products, nil
}

// Update applies a partial update. Only fields present in the patch are
// overwritten; a present zero (stock 0) is applied, not skipped.
func (s *CatalogService) Update(ctx context.Context, id string, patch repository.ProductPatch) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("product id is required for editing", nil)
	}
	// A present field must carry a usable value; patches may omit fields
	// but cannot blank out what a product is required to have.
	if patch.Title != nil && *patch.Title == "" {
		return nil, apperrors.NewValidationError("title cannot be empty", nil)
	}
	if patch.Description != nil && *patch.Description == "" {
		return nil, apperrors.NewValidationError("description cannot be empty", nil)
	}
	if patch.Category != nil && *patch.Category == "" {
		return nil, apperrors.NewValidationError("category cannot be empty", nil)
	}
	if patch.ImageURLs != nil && len(patch.ImageURLs) == 0 {
		return nil, apperrors.NewValidationError("at least one image url is required", nil)
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return nil, apperrors.NewValidationError("price must be greater than zero", nil)
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, apperrors.NewValidationError("stock cannot be negative", nil)
	}
	if patch.Category != nil {
		lowered := strings.ToLower(*patch.Category)
		patch.Category = &lowered
	}

	product, err := s.products.UpdatePartial(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.invalidate(ctx)
	s.publish(ctx, events.EventProductUpdated, events.ProductEventPayload{
		ProductID: product.ID,
		Title:     product.Title,
		Category:  product.Category,
		Price:     product.Price,
	})
	return product, nil
}

// Delete removes a product and returns its id for cache reconciliation.
func (s *CatalogService) Delete(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", apperrors.NewValidationError("product id is required for deletion", nil)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("product", nil)
		}
		return "", apperrors.NewInternalError(err)
	}

	s.invalidate(ctx)
	s.publish(ctx, events.EventProductDeleted, events.ProductEventPayload{ProductID: id})
	return id, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (s *CatalogService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
