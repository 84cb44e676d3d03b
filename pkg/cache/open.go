package cache

import (
	"context"
	"fmt"

	"github.com/matzehuels/pcbdrill/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists every backend name in display order.
var Backends = []string{BackendNone, BackendFile, BackendMemory, BackendRedis, BackendMongo}

// Options selects and configures a backend.
type Options struct {
	Backend       string
	Dir           string // file
	MemorySize    int    // memory
	RedisAddr     string // redis
	MongoURI      string // mongo
	MongoDatabase string // mongo
}

// Open creates the cache described by o. An empty backend means none.
func Open(ctx context.Context, o Options) (Cache, error) {
	switch o.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if o.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file cache requires a directory")
		}
		return nonNil(NewFileCache(o.Dir))
	case BackendMemory:
		return nonNil(NewMemoryCache(o.MemorySize))
	case BackendRedis:
		if o.RedisAddr == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "redis cache requires an address")
		}
		return nonNil(DialRedis(ctx, o.RedisAddr))
	case BackendMongo:
		if o.MongoURI == "" || o.MongoDatabase == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo cache requires a uri and a database")
		}
		return nonNil(DialMongo(ctx, o.MongoURI, o.MongoDatabase))
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want one of %v)", o.Backend, Backends)
	}
}

// nonNil keeps a failed constructor from producing a non-nil Cache holding
// a nil pointer.
func nonNil[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Describe returns a short human-readable location of the backend.
func Describe(o Options) string {
	switch o.Backend {
	case BackendFile:
		return o.Dir
	case BackendMemory:
		return fmt.Sprintf("memory (%d entries)", o.MemorySize)
	case BackendRedis:
		return "redis://" + o.RedisAddr
	case BackendMongo:
		return fmt.Sprintf("%s/%s", o.MongoURI, o.MongoDatabase)
	default:
		return "disabled"
	}
}
