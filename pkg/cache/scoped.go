package cache

// ScopedKeyer prefixes every key of an inner Keyer. The pipeline scopes
// keys by release so an upgraded binary never serves artifacts drawn by an
// older one.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(dataHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(dataHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
