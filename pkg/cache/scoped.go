package cache

// ScopedKeyer wraps a Keyer with a prefix. Servers sharing one Redis or
// MongoDB cache use it to keep their namespaces apart:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key of inner.
// A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DrillKey returns the prefixed key of the inner keyer.
func (k *ScopedKeyer) DrillKey(inputHash string, opts DrillKeyOpts) string {
	return k.prefix + k.inner.DrillKey(inputHash, opts)
}

// ArtifactKey returns the prefixed key of the inner keyer.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}
