package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one backend without seeing each other's entries.
//
// Example usage:
//
//	// Staging and production share one Redis instance
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ProfileKey generates a prefixed profile key.
func (k *ScopedKeyer) ProfileKey(specHash string, opts ProfileKeyOpts) string {
	return k.prefix + k.inner.ProfileKey(specHash, opts)
}

// MultiWindowKey generates a prefixed multi-window key.
func (k *ScopedKeyer) MultiWindowKey(profileKey string, width, height int) string {
	return k.prefix + k.inner.MultiWindowKey(profileKey, width, height)
}
