package service_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
)

// countingCache records cache traffic for invalidation assertions.
type countingCache struct {
	warm        []domain.Product
	hits        atomic.Int64
	sets        atomic.Int64
	invalidates atomic.Int64
}

func (c *countingCache) Get(context.Context) ([]domain.Product, bool) {
	if c.warm == nil {
		return nil, false
	}
	c.hits.Add(1)
	return c.warm, true
}

func (c *countingCache) Set(_ context.Context, products []domain.Product) {
	c.sets.Add(1)
	c.warm = products
}

func (c *countingCache) Invalidate(context.Context) {
	c.invalidates.Add(1)
	c.warm = nil
}

func newCatalog() (*service.CatalogService, *countingCache) {
	cache := &countingCache{}
	return service.NewCatalogService(repository.NewInMemoryProductRepository(), cache, nil), cache
}

func shoeInput() service.ProductInput {
	return service.ProductInput{
		Title:       "Shoe",
		Description: "Running shoe",
		Price:       699,
		Category:    "Footwear",
		ImageURLs:   []string{"http://x/1.png"},
		Stock:       5,
	}
}

func TestCreate_LowercasesCategoryAndListsNewestFirst(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalog()
	ctx := context.Background()

	_, err := svc.Create(ctx, service.ProductInput{
		Title: "Older", Description: "d", Price: 10,
		Category: "Misc", ImageURLs: []string{"http://x/0.png"},
	})
	require.NoError(t, err)

	created, err := svc.Create(ctx, shoeInput())
	require.NoError(t, err)
	assert.Equal(t, "footwear", created.Category)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, created.ID, products[0].ID)
	assert.Equal(t, "footwear", products[0].Category)
}

func TestCreate_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalog()
	ctx := context.Background()

	cases := []struct {
		name  string
		input service.ProductInput
	}{
		{"missing title", service.ProductInput{Description: "d", Price: 1, Category: "c", ImageURLs: []string{"u"}}},
		{"missing images", service.ProductInput{Title: "t", Description: "d", Price: 1, Category: "c"}},
		{"zero price", service.ProductInput{Title: "t", Description: "d", Price: 0, Category: "c", ImageURLs: []string{"u"}}},
		{"negative price", service.ProductInput{Title: "t", Description: "d", Price: -5, Category: "c", ImageURLs: []string{"u"}}},
		{"negative stock", service.ProductInput{Title: "t", Description: "d", Price: 1, Category: "c", ImageURLs: []string{"u"}, Stock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
		})
	}
}

func TestList_EmptyCatalogIsNotAnError(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalog()

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestUpdate_StockZeroSurvivesPartialUpdate(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalog()
	ctx := context.Background()

	created, err := svc.Create(ctx, shoeInput())
	require.NoError(t, err)

	zero := 0
	updated, err := svc.Update(ctx, created.ID, repository.ProductPatch{Stock: &zero})
	require.NoError(t, err)

	// Stock 0 is a real update; everything else stays put.
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Price, updated.Price)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.ImageURLs, updated.ImageURLs)
}

func TestUpdate_RejectsBlankedRequiredFields(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalog()
	ctx := context.Background()

	created, err := svc.Create(ctx, shoeInput())
	require.NoError(t, err)

	empty := ""
	cases := []struct {
		name  string
		patch repository.ProductPatch
	}{
		{"empty title", repository.ProductPatch{Title: &empty}},
		{"empty description", repository.ProductPatch{Description: &empty}},
		{"empty category", repository.ProductPatch{Category: &empty}},
		{"empty image list", repository.ProductPatch{ImageURLs: []string{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(ctx, created.ID, tc.patch)
			assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
		})
	}

	// The rejected patches left the product as created.
	stored, err := svc.Update(ctx, created.ID, repository.ProductPatch{})
	require.NoError(t, err)
	assert.Equal(t, created.Title, stored.Title)
	assert.Equal(t, created.Description, stored.Description)
	assert.Equal(t, created.Category, stored.Category)
	assert.Equal(t, created.ImageURLs, stored.ImageURLs)
}

func TestUpdate_LowercasesCategory(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalog()
	ctx := context.Background()

	created, err := svc.Create(ctx, shoeInput())
	require.NoError(t, err)

	category := "SNEAKERS"
	updated, err := svc.Update(ctx, created.ID, repository.ProductPatch{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, "sneakers", updated.Category)
}

func TestUpdate_MissingIDAndUnknownID(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalog()
	ctx := context.Background()

	_, err := svc.Update(ctx, "", repository.ProductPatch{})
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	_, err = svc.Update(ctx, "nope", repository.ProductPatch{})
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestDelete_RemovesAndReportsID(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalog()
	ctx := context.Background()

	created, err := svc.Create(ctx, shoeInput())
	require.NoError(t, err)

	removedID, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removedID)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestDelete_MissingAndUnknownID(t *testing.T) {
	t.Parallel()
	svc, _ := newCatalog()
	ctx := context.Background()

	_, err := svc.Delete(ctx, "")
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	_, err = svc.Delete(ctx, "nope")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestMutationsInvalidateCache(t *testing.T) {
	t.Parallel()
	svc, cache := newCatalog()
	ctx := context.Background()

	created, err := svc.Create(ctx, shoeInput())
	require.NoError(t, err)
	assert.EqualValues(t, 1, cache.invalidates.Load())

	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cache.sets.Load())

	// A warm cache serves the next listing.
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cache.hits.Load())

	price := 750.0
	_, err = svc.Update(ctx, created.ID, repository.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.EqualValues(t, 2, cache.invalidates.Load())

	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, cache.invalidates.Load())
}
