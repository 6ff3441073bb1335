// Package cache provides the dimension cache used to skip re-probing source
// images across builds.
//
// Decoding an image header is cheap, but asset pipelines routinely pack
// thousands of frames and rebuild often; caching (width, height) keyed by
// path, size, and modification time avoids touching every source file on
// every run. Three backends are provided:
//   - FileCache: per-user on-disk cache for CLI usage
//   - RedisCache: shared cache for build farms
//   - NullCache: caching disabled
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Dimensions is one cached measurement: the pixel size of a source image.
type Dimensions struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// Cache stores probed image dimensions under string keys with optional TTLs.
type Cache interface {
	// Get retrieves cached dimensions. The second return reports a hit.
	Get(ctx context.Context, key string) (Dimensions, bool, error)

	// Set stores dimensions with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, d Dimensions, ttl time.Duration) error

	// Delete removes an entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DimensionKey builds the cache key for a source image's probed dimensions.
// Size and mtime are part of the key so an edited file misses naturally
// instead of serving stale dimensions. The key is a namespaced SHA-256 hex
// digest, so every backend sees a flat, fixed-length key space.
func DimensionKey(path string, size int64, mtime int64) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%d", path, size, mtime)
	return "dim:" + hex.EncodeToString(h.Sum(nil))
}
