package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloDarma22/E-commerce/models"
)

// A nil catalog stands in for "redis not configured" and must be a no-op.
func TestNilCatalogIsSafe(t *testing.T) {
	var catalog *Catalog
	ctx := context.Background()

	product, ok := catalog.GetProduct(ctx, "keyboard")
	assert.Nil(t, product)
	assert.False(t, ok)

	catalog.SetProduct(ctx, &models.Product{Slug: "keyboard"})
	catalog.InvalidateProduct(ctx, "keyboard")
}
