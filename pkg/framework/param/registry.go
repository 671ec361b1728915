package param

import (
	"fmt"
	"sync"
)

// Registry is the flat parameter table built once at plugin construction. It
// maps stable string ids to parameters and preserves insertion order for
// indexed host enumeration. Nested parameter groups are flattened into
// id-prefixed entries at registration time (see AddGroup); nothing is
// resolved recursively at access time.
//
// The registry itself is only mutated during construction; the mutex guards
// those non-realtime mutations. The audio thread only calls Get/GetByIndex/
// All, which after construction are stable, and then works on the lock-free
// parameter cells directly.
type Registry struct {
	params map[string]*Parameter
	order  []string
	mu     sync.RWMutex
}

// NewRegistry creates an empty parameter registry.
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[string]*Parameter),
		order:  make([]string, 0),
	}
}

// Add registers parameters. A duplicate id or an invalid parameter
// configuration is a construction error: registration fails and the plugin
// must not load.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if err := p.validate(); err != nil {
			return err
		}
		if _, exists := r.params[p.id]; exists {
			return fmt.Errorf("param: duplicate parameter id %q", p.id)
		}
		r.params[p.id] = p
		r.order = append(r.order, p.id)
	}
	return nil
}

// AddGroup registers parameters under an id prefix, flattening a logical
// group (e.g. one entry of a parameter array) into "prefix/id" entries.
func (r *Registry) AddGroup(prefix string, params ...*Parameter) error {
	for _, p := range params {
		p.id = prefix + "/" + p.id
	}
	return r.Add(params...)
}

// Get retrieves a parameter by id, or nil if unknown.
func (r *Registry) Get(id string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.params[id]
}

// GetByIndex retrieves a parameter by insertion index, or nil if out of
// range.
func (r *Registry) GetByIndex(index int) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.order) {
		return nil
	}
	return r.params[r.order[index]]
}

// Count returns the number of registered parameters.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// All returns all parameters in insertion order. The returned slice is a
// copy; build it once outside the realtime path and reuse it there.
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}
	return result
}

// IDs returns all parameter ids in insertion order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, len(r.order))
	copy(result, r.order)
	return result
}

// ResetAll restores every parameter to its default and clears modulation.
func (r *Registry) ResetAll() {
	for _, p := range r.All() {
		p.ResetToDefault()
	}
}
