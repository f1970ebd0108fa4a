package cache

// ScopedKeyer prefixes every key produced by an inner Keyer. Clients
// pointed at a mirror index use it so their entries never collide with
// those of the public index:
//
//	keyer := cache.NewScopedKeyer(nil, "index:"+cache.Hash([]byte(url))[:12]+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) CatalogKey(index string) string {
	return k.prefix + k.inner.CatalogKey(index)
}
