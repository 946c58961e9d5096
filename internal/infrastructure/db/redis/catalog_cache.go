package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// CatalogCache is a read-through cache for catalog listings backed by Redis.
// Keys: catalog:all and catalog:cat:<category>. Admin writes invalidate
// every catalog key at once; the catalog is small and read-mostly, so a
// full flush is cheaper than tracking which categories a write touched.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// Get returns the cached listing for category ("" = full catalog), or
// (nil, nil) on a cache miss.
func (c *CatalogCache) Get(ctx context.Context, category string) ([]*domain.Product, error) {
	raw, err := c.client.Get(ctx, c.key(category)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog cache get: %w", err)
	}

	var products []*domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("catalog cache decode: %w", err)
	}
	return products, nil
}

// Set stores the listing for category, expiring after cacheTTL.
func (c *CatalogCache) Set(ctx context.Context, category string, products []*domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(category), raw, cacheTTL).Err()
}

// Invalidate drops every catalog key.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "catalog:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("catalog cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *CatalogCache) key(category string) string {
	if category == "" {
		return "catalog:all"
	}
	return "catalog:cat:" + category
}
