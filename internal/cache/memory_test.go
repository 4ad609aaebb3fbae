package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

func sampleItems() []entity.CatalogItem {
	return []entity.CatalogItem{
		{Code: "SRV-01", Name: "Deep Tissue Massage", Kind: enum.ItemKindService, UnitPrice: decimal.NewFromInt(90)},
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCatalogCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, enum.ItemKindService, sampleItems(), time.Minute))

	items, hit, err := c.Get(ctx, enum.ItemKindService)
	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, items, 1)
	assert.Equal(t, "SRV-01", items[0].Code)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCatalogCache()

	_, hit, err := c.Get(context.Background(), enum.ItemKindProduct)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCatalogCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, enum.ItemKindService, sampleItems(), -time.Second))

	_, hit, err := c.Get(ctx, enum.ItemKindService)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheInvalidate(t *testing.T) {
	c := NewMemoryCatalogCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, enum.ItemKindService, sampleItems(), time.Minute))
	require.NoError(t, c.Invalidate(ctx))

	_, hit, err := c.Get(ctx, enum.ItemKindService)
	require.NoError(t, err)
	assert.False(t, hit)
}
