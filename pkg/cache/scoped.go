package cache

// ScopedKeyer wraps a Keyer with a prefix so multiple datasets or users can
// share one backend without key collisions.
//
// Example usage:
//
//	// Dataset-specific keys on a shared redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "dataset:bio-decagon:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated
// keys. A nil inner keyer uses the default scheme.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed key for graph documents.
func (k *ScopedKeyer) GraphKey(contentHash string) string {
	return k.prefix + k.inner.GraphKey(contentHash)
}

// LayoutKey generates a prefixed key for settled layouts.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}
