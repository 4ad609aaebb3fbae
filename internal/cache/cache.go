package cache

import (
	"context"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

// CatalogCache caches per-kind catalog listings so billing pickers do not
// hit the database on every keystroke. Writes invalidate the whole cache.
type CatalogCache interface {
	Get(ctx context.Context, kind enum.ItemKind) ([]entity.CatalogItem, bool, error)
	Set(ctx context.Context, kind enum.ItemKind, items []entity.CatalogItem, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// NoopCatalogCache satisfies CatalogCache without storing anything
type NoopCatalogCache struct{}

func (NoopCatalogCache) Get(_ context.Context, _ enum.ItemKind) ([]entity.CatalogItem, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) Set(_ context.Context, _ enum.ItemKind, _ []entity.CatalogItem, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) Invalidate(_ context.Context) error {
	return nil
}
