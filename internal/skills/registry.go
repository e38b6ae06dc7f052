package skills

import "sync/atomic"

// Registry publishes the current Index. Rebuilds construct a complete new Index and
// swap it in atomically, so readers never observe a partially built tree.
type Registry struct {
	current atomic.Pointer[Index]
}

// NewRegistry returns a registry serving idx. A nil idx serves an empty index.
func NewRegistry(idx *Index) *Registry {
	r := &Registry{}
	if idx == nil {
		idx = BuildIndex(nil)
	}
	r.current.Store(idx)
	return r
}

// Load returns the index currently published.
func (r *Registry) Load() *Index {
	return r.current.Load()
}

// Publish replaces the current index. Nil is ignored.
func (r *Registry) Publish(idx *Index) {
	if idx == nil {
		return
	}
	r.current.Store(idx)
}

// Rebuild builds a new index from catalog and publishes it once complete.
func (r *Registry) Rebuild(catalog []string, opts ...Option) *Index {
	idx := BuildIndex(catalog, opts...)
	r.Publish(idx)
	return idx
}
