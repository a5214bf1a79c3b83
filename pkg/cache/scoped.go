package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Different PDKs (or PDK versions) need separate cache namespaces, since
// the same cell name and parameters can yield different geometry under
// different layer stacks.
//
// Example usage:
//
//	// Keys scoped to one PDK version
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "pdk:soi220:v2:")
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

// ComponentKey generates a prefixed key for a built component.
func (k *ScopedKeyer) ComponentKey(cell string, params map[string]any) string {
	return k.prefix + k.inner.ComponentKey(cell, params)
}

// SimulationKey generates a prefixed key for a solver result.
func (k *ScopedKeyer) SimulationKey(engine, jobHash string, opts SimKeyOpts) string {
	return k.prefix + k.inner.SimulationKey(engine, jobHash, opts)
}

// MeshKey generates a prefixed key for a generated mesh.
func (k *ScopedKeyer) MeshKey(xsHash, stackHash string, opts MeshKeyOpts) string {
	return k.prefix + k.inner.MeshKey(xsHash, stackHash, opts)
}
