package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "search:"
	allKey    = keyPrefix + "all"
	scanBatch = 100
)

// SearchCache holds hotel search results in Redis for a fixed TTL.
// Every method tolerates a nil client and a failing server: lookups miss,
// writes and invalidations are dropped with a warning.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewSearchCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *SearchCache {
	return &SearchCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// Key returns the cache key of a location search. An empty location lists
// every hotel.
func Key(location string) string {
	location = strings.ToLower(strings.TrimSpace(location))
	if location == "" {
		return allKey
	}
	return keyPrefix + location
}

func (c *SearchCache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *SearchCache) Get(ctx context.Context, key string) ([]*model.Hotel, bool) {
	if !c.Enabled() {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Search cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var hotels []*model.Hotel
	if err := json.Unmarshal(raw, &hotels); err != nil {
		c.log.Warn("Discarding corrupt search cache entry", "key", key, "error", err)
		return nil, false
	}
	return hotels, true
}

func (c *SearchCache) Set(ctx context.Context, key string, hotels []*model.Hotel) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(hotels)
	if err != nil {
		c.log.Warn("Failed to encode search results for cache", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Search cache write failed", "key", key, "error", err)
	}
}

// InvalidateAll drops every cached search result. It returns the Redis error
// so callers can log it in their own context; the cache is left to expire by
// TTL in that case.
func (c *SearchCache) InvalidateAll(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	var keys []string
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	c.log.Debug("Search cache invalidated", "keys", len(keys))
	return nil
}
