package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/domain"
)

const (
	catalogCacheKey = "catalog:products"
	catalogCacheTTL = 5 * time.Minute
)

// RedisCatalogCache keeps the last catalog listing in Redis. The cache is
// best-effort: any Redis failure degrades to a store read, never an error.
type RedisCatalogCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCatalogCache builds the cache over an established client.
func NewRedisCatalogCache(r *Redis, logger *zap.Logger) *RedisCatalogCache {
	if r == nil || r.Client == nil {
		return nil
	}
	return &RedisCatalogCache{client: r.Client, logger: logger}
}

// Get returns the cached listing and whether the cache was warm.
func (c *RedisCatalogCache) Get(ctx context.Context) ([]domain.Product, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		c.logger.Warn("catalog cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return products, true
}

// Set stores the listing.
func (c *RedisCatalogCache) Set(ctx context.Context, products []domain.Product) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing after a catalog mutation.
func (c *RedisCatalogCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, catalogCacheKey).Err(); err != nil {
		c.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
