// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about asset generation, image source
// fallbacks, cache operations, and backend API calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGenerationHooks(&myGenerationHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generation().OnAssetStart(ctx, productID, ratioName)
//	// ... produce the asset ...
//	observability.Generation().OnAssetComplete(ctx, productID, ratioName, source, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generation Hooks
// =============================================================================

// GenerationHooks receives events from the asset generation pipeline.
type GenerationHooks interface {
	// Product events
	OnProductStart(ctx context.Context, productID, locale string)
	OnProductComplete(ctx context.Context, productID, locale string, assets int, duration time.Duration)

	// Per-asset events. source is the image source tag ("reused",
	// "generated", "placeholder"); empty on failure.
	OnAssetStart(ctx context.Context, productID, ratio string)
	OnAssetComplete(ctx context.Context, productID, ratio, source string, duration time.Duration, err error)

	// OnSourceFallback records a product image path that was declared in the
	// brief but did not resolve on disk, forcing the AI generation path.
	// Declared-but-missing assets usually mean a brief shipped before its
	// files did, so this event is surfaced rather than silently absorbed.
	OnSourceFallback(ctx context.Context, productID, declaredPath string)
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

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

type noopGenerationHooks struct{}

func (noopGenerationHooks) OnProductStart(context.Context, string, string) {}
func (noopGenerationHooks) OnProductComplete(context.Context, string, string, int, time.Duration) {
}
func (noopGenerationHooks) OnAssetStart(context.Context, string, string) {}
func (noopGenerationHooks) OnAssetComplete(context.Context, string, string, string, time.Duration, error) {
}
func (noopGenerationHooks) OnSourceFallback(context.Context, string, string) {}

type noopCacheHooks struct{}

func (noopCacheHooks) OnCacheHit(context.Context, string)  {}
func (noopCacheHooks) OnCacheMiss(context.Context, string) {}
func (noopCacheHooks) OnCacheSet(context.Context, string, int) {
}

type noopHTTPHooks struct{}

func (noopHTTPHooks) OnRequest(context.Context, string, string, string) {}
func (noopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
}
func (noopHTTPHooks) OnError(context.Context, string, string, string, error) {}

// =============================================================================
// Registration
// =============================================================================

var (
	mu              sync.RWMutex
	generationHooks GenerationHooks = noopGenerationHooks{}
	cacheHooks      CacheHooks      = noopCacheHooks{}
	httpHooks       HTTPHooks       = noopHTTPHooks{}
)

// SetGenerationHooks registers hooks for generation pipeline events.
// Pass nil to restore the no-op implementation.
func SetGenerationHooks(h GenerationHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		generationHooks = noopGenerationHooks{}
		return
	}
	generationHooks = h
}

// SetCacheHooks registers hooks for cache events.
// Pass nil to restore the no-op implementation.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		cacheHooks = noopCacheHooks{}
		return
	}
	cacheHooks = h
}

// SetHTTPHooks registers hooks for HTTP client events.
// Pass nil to restore the no-op implementation.
func SetHTTPHooks(h HTTPHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		httpHooks = noopHTTPHooks{}
		return
	}
	httpHooks = h
}

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	mu.RLock()
	defer mu.RUnlock()
	return generationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	mu.RLock()
	defer mu.RUnlock()
	return httpHooks
}
