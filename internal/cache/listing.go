// Package cache holds the optional short-TTL listing cache. Correctness
// never depends on it: the resolver recomputes listings from the
// repository when the cache is absent or cold.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	models "campuscloud/internal/domain/models/content"
)

// ListingCache caches resolved listings keyed by (scope, folder, viewer).
// The viewer is part of the key because two viewers of the same folder can
// legitimately see different subsets.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a listing cache over an existing Redis client
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{
		client: client,
		ttl:    ttl,
	}
}

func listingKey(scope models.Scope, folderID, viewerID string) string {
	return fmt.Sprintf("listing:%s:%s:%s", scope.CacheKey(), folderID, viewerID)
}

// Get reads a cached listing. Returns (nil, nil) on a miss.
func (c *ListingCache) Get(ctx context.Context, scope models.Scope, folderID, viewerID string) (*models.Listing, error) {
	val, err := c.client.Get(ctx, listingKey(scope, folderID, viewerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var listing models.Listing
	if err := json.Unmarshal([]byte(val), &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// Set writes a resolved listing with the configured TTL
func (c *ListingCache) Set(ctx context.Context, scope models.Scope, folderID, viewerID string, listing *models.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listingKey(scope, folderID, viewerID), string(data), c.ttl).Err()
}

// InvalidateFolder drops the cached listings of one folder for every
// viewer. Called by mutation paths with the parent of the changed node.
func (c *ListingCache) InvalidateFolder(ctx context.Context, folderID string) error {
	pattern := fmt.Sprintf("listing:*:%s:*", folderID)

	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return nil
}
