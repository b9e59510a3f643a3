// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about scene lifecycle, cache
// operations, and HTTP serving.
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
//	    observability.SetSceneHooks(&mySceneHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scene().OnSceneInit(nodeCount, linkCount)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scene Hooks
// =============================================================================

// SceneHooks receives events from the interactive graph scene.
// Implementations must be cheap: OnTick and OnGesture fire on the frame
// loop.
type SceneHooks interface {
	// OnSceneInit records a scene being built for a node/link set.
	OnSceneInit(nodeCount, linkCount int)

	// OnTick records one simulation step with the current alpha.
	OnTick(alpha float64)

	// OnGesture records a dispatched gesture event by kind.
	OnGesture(kind int)

	// OnResize records an applied viewport change.
	OnResize(width, height float64)

	// OnTeardown records a scene being closed.
	OnTeardown()
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from layout cache operations.
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

// HTTPHooks receives events from the embedded viewer server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSceneHooks is a no-op implementation of SceneHooks.
type NoopSceneHooks struct{}

func (NoopSceneHooks) OnSceneInit(int, int)        {}
func (NoopSceneHooks) OnTick(float64)              {}
func (NoopSceneHooks) OnGesture(int)               {}
func (NoopSceneHooks) OnResize(float64, float64)   {}
func (NoopSceneHooks) OnTeardown()                 {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string) {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sceneHooks SceneHooks = NoopSceneHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetSceneHooks registers custom scene hooks.
// This should be called once at application startup before any scene is built.
func SetSceneHooks(h SceneHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sceneHooks = h
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

// Scene returns the registered scene hooks.
func Scene() SceneHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sceneHooks
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
	sceneHooks = NoopSceneHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
