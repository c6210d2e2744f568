package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/PabloDarma22/E-commerce/models"
)

const productKeyPrefix = "product:slug:"

// Catalog is a read-through cache for product detail lookups. A nil *Catalog
// is valid and behaves as a permanent miss, so callers never need to care
// whether redis is configured.
type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalog(rdb *redis.Client, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Catalog{rdb: rdb, ttl: ttl}
}

func (c *Catalog) GetProduct(ctx context.Context, slug string) (*models.Product, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, productKeyPrefix+slug).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("slug", slug).Msg("catalog cache read failed")
		}
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, false
	}
	return &product, true
}

func (c *Catalog) SetProduct(ctx context.Context, product *models.Product) {
	if c == nil || product == nil {
		return
	}

	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, productKeyPrefix+product.Slug, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("slug", product.Slug).Msg("catalog cache write failed")
	}
}

// InvalidateProduct drops the cached entry after admin writes.
func (c *Catalog) InvalidateProduct(ctx context.Context, slug string) {
	if c == nil || slug == "" {
		return
	}
	if err := c.rdb.Del(ctx, productKeyPrefix+slug).Err(); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("catalog cache invalidation failed")
	}
}
