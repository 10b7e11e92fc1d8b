package lint

import (
	"slices"
	"sync"
)

// Registry indexes rules by ID and by name. Rules returns them in the
// order they were first registered, which is also the order the engine
// runs them in.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Rule
	byName map[string]Rule
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byID: map[string]Rule{}, byName: map[string]Rule{}}
}

// DefaultRegistry holds the built-in rules; the rules package fills it
// from init.
//
//nolint:gochecknoglobals // Built-in rules register here.
var DefaultRegistry = NewRegistry()

// Register adds rule. Registering an ID again swaps the rule in place and
// forgets the old rule's name.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if prev, exists := r.byID[id]; exists {
		delete(r.byName, prev.Name())
	} else {
		r.order = append(r.order, id)
	}
	r.byID[id] = rule
	r.byName[rule.Name()] = rule
}

// Get looks key up as an ID, then as a name.
func (r *Registry) Get(key string) (Rule, bool) {
	if rule, ok := r.GetByID(key); ok {
		return rule, true
	}
	return r.GetByName(key)
}

func (r *Registry) GetByID(id string) (Rule, bool) {
	return r.lookup(r.byID, id)
}

func (r *Registry) GetByName(name string) (Rule, bool) {
	return r.lookup(r.byName, name)
}

func (r *Registry) lookup(index map[string]Rule, key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := index[key]
	return rule, ok
}

// Resolve maps an ID or name to the canonical ID.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	if rule, ok := r.Get(key); ok {
		return rule.ID(), rule, true
	}
	return "", nil, false
}

// Rules lists rules in registration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, len(r.order))
	for i, id := range r.order {
		rules[i] = r.byID[id]
	}
	return rules
}

// IDs lists rule IDs sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(slices.Values(r.order))
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
