package cache

// ScopedKeyer wraps a Keyer with a fixed prefix. It keeps owl2json entries
// apart from other applications sharing the same Redis database.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "owl2json:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer falls back to the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// CountsKey generates a prefixed key for count tables.
func (k *ScopedKeyer) CountsKey(backing, qualifier string) string {
	return k.prefix + k.inner.CountsKey(backing, qualifier)
}

// OntologyKey generates a prefixed key for parsed class graphs.
func (k *ScopedKeyer) OntologyKey(iri string, opts OntologyKeyOpts) string {
	return k.prefix + k.inner.OntologyKey(iri, opts)
}
