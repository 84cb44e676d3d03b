package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemorySize is the entry capacity used when none is configured.
const DefaultMemorySize = 512

// MemoryCache is a bounded in-process cache. When full, the least recently
// used entry is evicted; entries past their TTL are dropped on read.
type MemoryCache struct {
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a cache holding at most size entries. A size of
// zero or less uses DefaultMemorySize.
func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = DefaultMemorySize
	}
	entries, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &MemoryCache{entries: entries, now: time.Now}, nil
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a copy of data. A ttl of zero or less never expires.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries.Add(key, e)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}

// Close purges all entries.
func (c *MemoryCache) Close() error {
	c.entries.Purge()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
