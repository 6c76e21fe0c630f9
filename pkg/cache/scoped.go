package cache

// ScopedKeyer prepends a fixed namespace to every key, so several
// deployments can share one Redis database.
//
//	keyer := cache.NewScopedKeyer(nil, "pearls:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (the default keyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) GridKey(opts GridKeyOpts) string {
	return k.prefix + k.inner.GridKey(opts)
}

func (k *ScopedKeyer) ArtifactKey(gridHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(gridHash, opts)
}
