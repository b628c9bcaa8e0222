package cache

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey returns the key for a response fetched from rawURL, scoped by
	// namespace (e.g. "page:", "license:").
	HTTPKey(namespace, rawURL string) string
}

// DefaultKeyer produces keys of the form "http:<namespace>:<url>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey implements [Keyer].
func (DefaultKeyer) HTTPKey(namespace, rawURL string) string {
	return "http:" + namespace + ":" + rawURL
}

// ScopedKeyer wraps a Keyer with a prefix, isolating several tools or users
// that share one Redis instance.
//
//	keyer := cache.NewScopedKeyer(nil, "ci:")
//	keyer.HTTPKey("page:", u) // "ci:http:page::<u>"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey implements [Keyer].
func (k *ScopedKeyer) HTTPKey(namespace, rawURL string) string {
	return k.prefix + k.inner.HTTPKey(namespace, rawURL)
}
