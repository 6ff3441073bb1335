package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements a Redis-backed dimension cache for build farms
// where many workers share one cache. Entries are stored as compact
// "WxH" strings.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis server at addr and verifies the
// connection with a ping before returning.
func NewRedisCache(ctx context.Context, addr string) (Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

// Get retrieves cached dimensions. A missing key is a miss, not an error,
// as is a value that does not parse as "WxH". Transient connectivity
// failures are retried with backoff.
func (c *RedisCache) Get(ctx context.Context, key string) (Dimensions, bool, error) {
	var val string
	found := false
	err := RetryWithBackoff(ctx, func() error {
		s, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			found = false
			return nil
		}
		if err != nil {
			return Retryable(err)
		}
		val, found = s, true
		return nil
	})
	if err != nil || !found {
		return Dimensions{}, false, err
	}

	var d Dimensions
	if _, err := fmt.Sscanf(val, "%dx%d", &d.Width, &d.Height); err != nil {
		return Dimensions{}, false, nil
	}
	return d, true, nil
}

// Set stores dimensions in Redis with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, d Dimensions, ttl time.Duration) error {
	val := fmt.Sprintf("%dx%d", d.Width, d.Height)
	return RetryWithBackoff(ctx, func() error {
		if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
			return Retryable(err)
		}
		return nil
	})
}

// Delete removes an entry from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
