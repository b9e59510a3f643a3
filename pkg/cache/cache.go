// Package cache provides layout caching with multiple backends.
//
// Settling a force layout for a large interaction graph is the expensive
// step of the pipeline, so settled positions are cached keyed by the graph
// content and the physics parameters that produced them. Any change to
// either yields a different key and a recompute.
//
// Backends:
//   - file: directory of JSON entries, for CLI usage
//   - redis: shared cache for server deployments
//   - null: disables caching
package cache

import (
	"context"
	"time"
)

// Default TTL applied to layout entries. Layouts are content-addressed so
// they never go stale; the TTL only bounds disk and memory usage.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the physics and viewport parameters that shape a
// layout. Two runs with equal graph content and equal opts may share a
// cached result.
type LayoutKeyOpts struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	LinkDistance   float64 `json:"link_distance"`
	ChargeStrength float64 `json:"charge_strength"`
	CollideRadius  float64 `json:"collide_radius"`
	Seed           int64   `json:"seed"`
}

// Keyer generates cache keys.
type Keyer interface {
	// GraphKey generates a key for validated graph documents, from the
	// content hash of the raw input.
	GraphKey(contentHash string) string

	// LayoutKey generates a key for settled layouts.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key generation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for validated graph documents.
func (k *DefaultKeyer) GraphKey(contentHash string) string {
	return hashKey("graph", contentHash)
}

// LayoutKey generates a key for settled layouts.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}
