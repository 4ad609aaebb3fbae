package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

const catalogKeyPrefix = "catalog:kind:"

// RedisCatalogCache stores catalog snapshots in Redis
type RedisCatalogCache struct {
	client *redis.Client
}

// NewRedisCatalogCache connects a catalog cache to the given Redis instance
func NewRedisCatalogCache(addr, password string, db int) *RedisCatalogCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCatalogCache{client: client}
}

func (c *RedisCatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

func catalogKey(kind enum.ItemKind) string {
	return catalogKeyPrefix + strconv.Itoa(int(kind))
}

func (c *RedisCatalogCache) Get(ctx context.Context, kind enum.ItemKind) ([]entity.CatalogItem, bool, error) {
	val, err := c.client.Get(ctx, catalogKey(kind)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []entity.CatalogItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, kind enum.ItemKind, items []entity.CatalogItem, ttl time.Duration) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey(kind), payload, ttl).Err()
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	keys := make([]string, 0, 3)
	for _, kind := range []enum.ItemKind{enum.ItemKindService, enum.ItemKindProduct, enum.ItemKindPackage} {
		keys = append(keys, catalogKey(kind))
	}
	return c.client.Del(ctx, keys...).Err()
}
