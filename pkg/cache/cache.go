// Package cache provides the storage layer for conversion results.
//
// A [Cache] is a byte-oriented key/value store with per-entry TTLs. Keys are
// produced by a [Keyer] so that every backend shares one key layout:
//
//	drill:<sha256>     tool summary of one input under one option set
//	artifact:<sha256>  one rendered output format
//
// # Backends
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [MemoryCache]: bounded in-process LRU, used by the server
//   - [RedisCache]: shared cache for several server replicas
//   - [MongoCache]: shared cache backed by a MongoDB collection with a TTL index
//
// All backends treat a corrupt or expired entry as a miss.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
//
// Implementations must be safe for concurrent use. Get returns hit=false
// and a nil error for missing or expired keys.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs per entry type.
const (
	TTLDrill    = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)
