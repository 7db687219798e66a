package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// In-memory implementations backing tests and local development without a
// Postgres instance. Semantics mirror the pgx repositories: missing rows
// surface as pgx.ErrNoRows, listings are newest-first, messages keep
// insertion order.

type InMemoryPrincipalRepository struct {
	mu         sync.RWMutex
	byID       map[string]domain.Principal
	byUsername map[string]string
}

func NewInMemoryPrincipalRepository() *InMemoryPrincipalRepository {
	return &InMemoryPrincipalRepository{
		byID:       make(map[string]domain.Principal),
		byUsername: make(map[string]string),
	}
}

func (r *InMemoryPrincipalRepository) Create(_ context.Context, principal *domain.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The unique constraint the store enforces regardless of the
	// controller's own existence check.
	if _, exists := r.byUsername[principal.Username]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "principals_username_key"}
	}

	now := time.Now()
	principal.ID = uuid.NewString()
	principal.CreatedAt = now
	principal.UpdatedAt = now
	r.byID[principal.ID] = *principal
	r.byUsername[principal.Username] = principal.ID
	return nil
}

func (r *InMemoryPrincipalRepository) Update(_ context.Context, principal *domain.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[principal.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(r.byUsername, stored.Username)
	principal.UpdatedAt = time.Now()
	r.byID[principal.ID] = *principal
	r.byUsername[principal.Username] = principal.ID
	return nil
}

func (r *InMemoryPrincipalRepository) GetByID(_ context.Context, id string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	principal, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &principal, nil
}

func (r *InMemoryPrincipalRepository) GetByUsername(_ context.Context, username string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	principal := r.byID[id]
	return &principal, nil
}

type InMemoryProductRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.Product
	order []string
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{byID: make(map[string]domain.Product)}
}

func (r *InMemoryProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.byID[product.ID] = *product
	// Most recent first, matching ORDER BY created_at DESC.
	r.order = append([]string{product.ID}, r.order...)
	return nil
}

func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &product, nil
}

func (r *InMemoryProductRepository) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.byID[id])
	}
	return products, nil
}

func (r *InMemoryProductRepository) UpdatePartial(_ context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	if patch.Title != nil {
		product.Title = *patch.Title
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.ImageURLs != nil {
		product.ImageURLs = patch.ImageURLs
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	product.UpdatedAt = time.Now()
	r.byID[id] = product
	return &product, nil
}

func (r *InMemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type InMemoryContactMessageRepository struct {
	mu       sync.RWMutex
	messages []domain.ContactMessage
}

func NewInMemoryContactMessageRepository() *InMemoryContactMessageRepository {
	return &InMemoryContactMessageRepository{}
}

func (r *InMemoryContactMessageRepository) Append(_ context.Context, message *domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = uuid.NewString()
	message.CreatedAt = time.Now()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *InMemoryContactMessageRepository) ListByPrincipal(_ context.Context, principalID string) ([]domain.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	messages := make([]domain.ContactMessage, 0)
	for _, message := range r.messages {
		if message.PrincipalID == principalID {
			messages = append(messages, message)
		}
	}
	return messages, nil
}
