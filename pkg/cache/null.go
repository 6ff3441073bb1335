package cache

import (
	"context"
	"time"
)

// NullCache disables dimension caching: every probe misses and writes are
// discarded.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

func (c *NullCache) Get(ctx context.Context, key string) (Dimensions, bool, error) {
	return Dimensions{}, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, d Dimensions, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
