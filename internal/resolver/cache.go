package resolver

import "sync"

// Cache holds exactly one Model per qualified name for the lifetime of a
// resolver. Models are registered before their supertypes are searched.
// Every resolver sharing a cache runs its top-level searches under the
// cache's search lock, so none observes another's pending models.
type Cache struct {
	search sync.Mutex

	mu     sync.Mutex
	models map[string]*Model
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{models: map[string]*Model{}}
}

// register inserts a pending model for name unless one already exists,
// returning the state it was found in. params is only called on insert.
func (c *Cache) register(name string, params func() []string) (*Model, state, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.models[name]; ok {
		return m, m.state, true
	}
	m := newModel(name, params())
	c.models[name] = m
	return m, statePending, false
}

// resolved returns the model for name if its search succeeded.
func (c *Cache) resolved(name string) (*Model, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.models[name]
	if !ok || m.state != stateResolved {
		return nil, false
	}
	return m, true
}

func (c *Cache) settle(m *Model, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		m.state = stateResolved
		return
	}
	m.state = stateMissed
}

// Len returns the number of registered names, including misses.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.models)
}
