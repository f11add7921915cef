package catalog

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the catalogs available to an analysis
type Registry interface {
	// Register adds a catalog under its own name
	Register(c *Catalog) error
	// RegisterFile loads a catalog from path and registers it under name
	RegisterFile(name, path string) error
	// Get returns the named catalog; an empty name selects the default
	Get(name string) (*Catalog, error)
	// List returns the registered catalog names, sorted
	List() []string
}

type registry struct {
	mu          sync.RWMutex
	catalogs    map[string]*Catalog
	defaultName string
}

// NewRegistry creates a registry holding the built-in default catalog
func NewRegistry() Registry {
	return &registry{
		catalogs:    map[string]*Catalog{DefaultName: Default()},
		defaultName: DefaultName,
	}
}

// NewRegistryWithDefault creates a registry where name is used when callers do
// not ask for a specific catalog. The name must be registered before use.
func NewRegistryWithDefault(name string) Registry {
	r := NewRegistry().(*registry)
	if name != "" {
		r.defaultName = name
	}
	return r
}

func (r *registry) Register(c *Catalog) error {
	if c == nil {
		return fmt.Errorf("catalog cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.catalogs[c.Name()]; exists {
		return fmt.Errorf("catalog %q is already registered", c.Name())
	}

	r.catalogs[c.Name()] = c
	return nil
}

func (r *registry) RegisterFile(name, path string) error {
	loaded, err := LoadFile(path)
	if err != nil {
		return fmt.Errorf("catalog %q: %w", name, err)
	}
	if name != "" && name != loaded.Name() {
		loaded = &Catalog{name: name, description: loaded.description, rules: loaded.rules}
	}
	return r.Register(loaded)
}

func (r *registry) Get(name string) (*Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.defaultName
	}

	c, exists := r.catalogs[name]
	if !exists {
		return nil, fmt.Errorf("catalog %q is not registered", name)
	}
	return c, nil
}

func (r *registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.catalogs))
	for name := range r.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
