// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about conversions,
// cache operations and HTTP API requests. Every hook defaults to a no-op, so
// the library carries no dependency on a particular metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetConversionHooks(&myConversionHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Conversion().OnDecodeStart(ctx, len(input))
//	// ... decode ...
//	observability.Conversion().OnDecodeComplete(ctx, len(elems), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Conversion Hooks
// =============================================================================

// ConversionHooks receives events from the conversion pipeline.
type ConversionHooks interface {
	// Decode events
	OnDecodeStart(ctx context.Context, inputSize int)
	OnDecodeComplete(ctx context.Context, elementCount int, duration time.Duration, err error)

	// Assemble events
	OnAssembleStart(ctx context.Context, elementCount int)
	OnAssembleComplete(ctx context.Context, toolCount, skipped int, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnError records a request that failed with an error response.
	OnError(ctx context.Context, method, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopConversionHooks is a no-op implementation of ConversionHooks.
type NoopConversionHooks struct{}

func (NoopConversionHooks) OnDecodeStart(context.Context, int)                                {}
func (NoopConversionHooks) OnDecodeComplete(context.Context, int, time.Duration, error)       {}
func (NoopConversionHooks) OnAssembleStart(context.Context, int)                              {}
func (NoopConversionHooks) OnAssembleComplete(context.Context, int, int, time.Duration)       {}
func (NoopConversionHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopConversionHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	conversionHooks ConversionHooks = NoopConversionHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetConversionHooks registers custom conversion hooks.
// This should be called once at application startup before any conversion.
func SetConversionHooks(h ConversionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		conversionHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Conversion returns the registered conversion hooks.
func Conversion() ConversionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return conversionHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	conversionHooks = NoopConversionHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
