package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Scene hooks
	s := NoopSceneHooks{}
	s.OnSceneInit(3, 2)
	s.OnTick(0.5)
	s.OnGesture(1)
	s.OnResize(800, 600)
	s.OnTeardown()

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "graph")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/api/graph")
	h.OnResponse(ctx, "GET", "/api/graph", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Scene() should return NoopSceneHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customScene := &testSceneHooks{}
	SetSceneHooks(customScene)
	if Scene() != customScene {
		t.Error("SetSceneHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Scene().(NoopSceneHooks); !ok {
		t.Error("Reset() should restore NoopSceneHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSceneHooks{}
	SetSceneHooks(custom)

	// Setting nil should be ignored
	SetSceneHooks(nil)

	if Scene() != custom {
		t.Error("SetSceneHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSceneHooks struct{ NoopSceneHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
