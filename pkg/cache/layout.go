package cache

import (
	"context"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/observability"
)

// LayoutCache pairs a backend with a keyer and speaks in layouts rather
// than raw bytes.
type LayoutCache struct {
	cache Cache
	keyer Keyer
}

// NewLayoutCache wraps a backend. A nil keyer uses the default scheme.
func NewLayoutCache(c Cache, k Keyer) *LayoutCache {
	if k == nil {
		k = NewDefaultKeyer()
	}
	return &LayoutCache{cache: c, keyer: k}
}

// Get looks up the settled layout for a graph hash and parameter set.
func (lc *LayoutCache) Get(ctx context.Context, graphHash string, opts LayoutKeyOpts) (graph.Layout, bool, error) {
	key := lc.keyer.LayoutKey(graphHash, opts)

	data, ok, err := lc.cache.Get(ctx, key)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return graph.Layout{}, false, err
	}

	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		// A corrupt entry is a miss; drop it so the rewrite is clean.
		_ = lc.cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, "layout")
		return graph.Layout{}, false, nil
	}

	observability.Cache().OnCacheHit(ctx, "layout")
	return l, true, nil
}

// Set stores a settled layout.
func (lc *LayoutCache) Set(ctx context.Context, graphHash string, opts LayoutKeyOpts, l graph.Layout) error {
	data, err := graph.MarshalLayout(l)
	if err != nil {
		return err
	}

	key := lc.keyer.LayoutKey(graphHash, opts)
	if err := lc.cache.Set(ctx, key, data, DefaultTTL); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, "layout", len(data))
	return nil
}

// Close closes the underlying backend.
func (lc *LayoutCache) Close() error {
	return lc.cache.Close()
}
