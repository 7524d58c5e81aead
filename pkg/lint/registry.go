package lint

import (
	"slices"
	"strings"
	"sync"
)

// Registry holds all registered lint rules in registration order.
// Registration order is the order rules run, and so the order their
// diagnostics appear for a file.
type Registry struct {
	mu    sync.RWMutex
	order []Rule
	keys  map[string]Rule // lowercased ID and name
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{keys: make(map[string]Rule)}
}

func ruleKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Register adds a rule to the registry.
// A rule with an existing ID replaces the old one in place.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.order, func(existing Rule) bool { return existing.ID() == rule.ID() })
	if idx >= 0 {
		old := r.order[idx]
		delete(r.keys, ruleKey(old.ID()))
		delete(r.keys, ruleKey(old.Name()))
		r.order[idx] = rule
	} else {
		r.order = append(r.order, rule)
	}

	r.keys[ruleKey(rule.Name())] = rule
	r.keys[ruleKey(rule.ID())] = rule
}

// Get looks a rule up by ID or name, ignoring case.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.keys[ruleKey(key)]
	return rule, ok
}

// Rules returns all registered rules in registration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// IDs returns all registered rule IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.order))
	for _, rule := range r.order {
		ids = append(ids, rule.ID())
	}
	slices.Sort(ids)
	return ids
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
