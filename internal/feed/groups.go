package feed

// ChoreoGroups maps canonical keys to choreography bundles, remembering the
// order in which keys were first registered. Bundles are shared handles: an
// item registered under two keys fills both groups in place.
type ChoreoGroups struct {
	keys   []string
	groups map[string]*ChoreoBundle
}

// NewChoreoGroups creates an empty group map
func NewChoreoGroups() *ChoreoGroups {
	return &ChoreoGroups{groups: make(map[string]*ChoreoBundle)}
}

// Ensure returns the bundle for key, creating it if needed
func (g *ChoreoGroups) Ensure(key string) *ChoreoBundle {
	if b, ok := g.groups[key]; ok {
		return b
	}
	b := &ChoreoBundle{}
	g.groups[key] = b
	g.keys = append(g.keys, key)
	return b
}

// Get returns the bundle for key
func (g *ChoreoGroups) Get(key string) (*ChoreoBundle, bool) {
	b, ok := g.groups[key]
	return b, ok
}

// Keys returns the keys in first-registration order
func (g *ChoreoGroups) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Len returns the number of groups
func (g *ChoreoGroups) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Each calls fn for every group in first-registration order
func (g *ChoreoGroups) Each(fn func(key string, bundle *ChoreoBundle)) {
	if g == nil {
		return
	}
	for _, k := range g.keys {
		fn(k, g.groups[k])
	}
}
