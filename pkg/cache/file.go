package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores dimension entries as small JSON files under a cache
// directory, one file per measured source image. This is the default
// backend for CLI usage.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based dimension cache rooted at dir,
// creating the directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// dimensionEntry is the on-disk form of one cached measurement.
type dimensionEntry struct {
	Dimensions
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves cached dimensions. Unreadable or expired entries are
// removed and reported as misses, never as errors.
func (c *FileCache) Get(ctx context.Context, key string) (Dimensions, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Dimensions{}, false, nil
	}
	if err != nil {
		return Dimensions{}, false, err
	}

	var entry dimensionEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return Dimensions{}, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return Dimensions{}, false, nil
	}

	return entry.Dimensions, true, nil
}

// Set stores dimensions under key with the given TTL.
func (c *FileCache) Set(ctx context.Context, key string, d Dimensions, ttl time.Duration) error {
	entry := dimensionEntry{Dimensions: d}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Delete removes an entry. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file backend.
func (c *FileCache) Close() error {
	return nil
}

// path maps a cache key to its file. DimensionKey yields a hex digest
// after the namespace prefix, so the first two digits shard entries into
// subdirectories to keep any one directory small.
func (c *FileCache) path(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		key = key[i+1:]
	}
	if len(key) < 3 {
		return filepath.Join(c.dir, key+".json")
	}
	return filepath.Join(c.dir, key[:2], key[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
