package schema

import (
	"sort"
	"sync"

	synthex "github.com/nick-vanduijn/synthex"
)

// Registry maps schema names to compiled schemas so reference fields can
// resolve at generation time. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Compiled
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Compiled)}
}

// Register adds or replaces a schema under its own name. Registering a
// nameless schema fails.
func (r *Registry) Register(c *Compiled) error {
	if c == nil || c.Name == "" {
		return synthex.NewError(synthex.CodeSchemaNoName, "cannot register schema without a name")
	}
	r.mu.Lock()
	r.schemas[c.Name] = c
	r.mu.Unlock()
	return nil
}

// Lookup resolves a schema by name.
func (r *Registry) Lookup(name string) (*Compiled, error) {
	r.mu.RLock()
	c, ok := r.schemas[name]
	r.mu.RUnlock()
	if !ok {
		return nil, synthex.SchemaError(synthex.CodeSchemaNotFound, name, "schema not registered")
	}
	return c, nil
}

// Names returns the registered schema names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.schemas))
	for n := range r.schemas {
		names = append(names, n)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}
