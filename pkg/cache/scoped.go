package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving a separate
// namespace to, for example, one server deployment sharing a Redis instance.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "keymapfmt:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner; a nil inner means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// KeymapKey returns the prefixed keymap key.
func (k *ScopedKeyer) KeymapKey(sourceHash string, opts KeymapKeyOpts) string {
	return k.prefix + k.inner.KeymapKey(sourceHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}
