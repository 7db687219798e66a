package client

import "sync"

// ProductCache is the admin inventory view-model: an ordered mirror of
// the last confirmed listing. Mutations happen only after the server
// confirms them, so the cache never diverges from the store on failure.
// If two edits race, the later response wins; there is no version or
// conflict detection.
type ProductCache struct {
	mu       sync.RWMutex
	products []Product
}

// NewProductCache returns an empty cache.
func NewProductCache() *ProductCache {
	return &ProductCache{}
}

// Replace swaps in a freshly fetched listing.
func (c *ProductCache) Replace(products []Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append([]Product(nil), products...)
}

// Prepend inserts a confirmed creation at the front, matching the
// server's newest-first order.
func (c *ProductCache) Prepend(product Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append([]Product{product}, c.products...)
}

// Update replaces the matching record in place, keeping its position.
// Returns false when the record is not cached.
func (c *ProductCache) Update(product Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == product.ID {
			c.products[i] = product
			return true
		}
	}
	return false
}

// Remove drops the record by id. Returns false when it is not cached.
func (c *ProductCache) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the cached listing.
func (c *ProductCache) Items() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Product(nil), c.products...)
}

// Len reports the cached product count.
func (c *ProductCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
