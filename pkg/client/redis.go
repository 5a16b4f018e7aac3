package client

import (
	"context"
	"time"

	"hotelbook/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// SetRedis connects the cache client. A failed ping is logged but the client
// is kept: the search cache degrades to a miss on every fault.
func (c *Client) SetRedis(log *logger.Logger, redisURL string) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Error("Invalid REDIS_URL, search cache disabled", "error", err)
		return
	}
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = 500 * time.Millisecond
	opts.WriteTimeout = 500 * time.Millisecond

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis ping failed, cache will retry lazily", "error", err)
	} else {
		log.Info("Successfully connected to Redis")
	}
	c.Redis = client
}
