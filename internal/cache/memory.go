package cache

import (
	"context"
	"sync"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

type memoryEntry struct {
	items     []entity.CatalogItem
	expiresAt time.Time
}

// MemoryCatalogCache is an in-process CatalogCache, used in tests and in
// deployments without Redis.
type MemoryCatalogCache struct {
	mu      sync.RWMutex
	entries map[enum.ItemKind]memoryEntry
}

// NewMemoryCatalogCache creates an empty in-memory catalog cache
func NewMemoryCatalogCache() *MemoryCatalogCache {
	return &MemoryCatalogCache{entries: make(map[enum.ItemKind]memoryEntry)}
}

func (c *MemoryCatalogCache) Get(_ context.Context, kind enum.ItemKind) ([]entity.CatalogItem, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[kind]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return append([]entity.CatalogItem(nil), entry.items...), true, nil
}

func (c *MemoryCatalogCache) Set(_ context.Context, kind enum.ItemKind, items []entity.CatalogItem, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[kind] = memoryEntry{
		items:     append([]entity.CatalogItem(nil), items...),
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCatalogCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[enum.ItemKind]memoryEntry)
	c.mu.Unlock()
	return nil
}
