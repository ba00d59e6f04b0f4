package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mercora/retail-api/internal/domains/stores/ports"
)

var _ ports.SnapshotCache = (*RedisSnapshotCache)(nil)

const inventoryKeyPrefix = "inventory:store:"

// RedisSnapshotCache stores inventory listings as JSON blobs with a TTL.
// A miss, an expired entry, and a decode failure all read as "not cached".
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

func (c *RedisSnapshotCache) GetInventory(ctx context.Context, storeID int64) ([]ports.InventoryItem, bool, error) {
	payload, err := c.client.Get(ctx, inventoryKey(storeID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []ports.InventoryItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false, nil
	}
	return items, true, nil
}

func (c *RedisSnapshotCache) SetInventory(ctx context.Context, storeID int64, items []ports.InventoryItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, inventoryKey(storeID), payload, c.ttl).Err()
}

func inventoryKey(storeID int64) string {
	return fmt.Sprintf("%s%d", inventoryKeyPrefix, storeID)
}
