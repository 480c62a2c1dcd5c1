package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

const storeCacheTTL = 5 * time.Minute

// StoreCache caches public store profiles, the hottest read path.
// Key format: store:profile:<store_id>
type StoreCache struct {
	client *redis.Client
}

// NewStoreCache creates a StoreCache wrapping the given Redis client.
func NewStoreCache(client *redis.Client) *StoreCache {
	return &StoreCache{client: client}
}

// Get returns the cached store, or (nil, nil) on a miss. Decode failures are
// treated as misses so a stale schema never breaks reads.
func (c *StoreCache) Get(ctx context.Context, storeID string) (*domain.Store, error) {
	raw, err := c.client.Get(ctx, c.key(storeID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store cache get: %w", err)
	}

	var store domain.Store
	if err := json.Unmarshal(raw, &store); err != nil {
		return nil, nil
	}
	return &store, nil
}

// Set stores the profile with a short TTL.
func (c *StoreCache) Set(ctx context.Context, store *domain.Store) error {
	raw, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("store cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(store.ID), raw, storeCacheTTL).Err()
}

// Invalidate drops the cached profile after a mutation.
func (c *StoreCache) Invalidate(ctx context.Context, storeID string) error {
	return c.client.Del(ctx, c.key(storeID)).Err()
}

func (c *StoreCache) key(storeID string) string {
	return "store:profile:" + storeID
}
