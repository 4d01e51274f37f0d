package pattern

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned by Lookup for unknown pattern names. The
// scheduler branches on it explicitly to substitute the fallback.
var ErrNotFound = errors.New("pattern: not found")

// Registry maps pattern names to implementations. It always holds at least
// the fallback pattern, so the engine can render even when discovery finds
// nothing.
type Registry struct {
	mu       sync.RWMutex
	patterns map[string]Pattern
	fallback string
}

// NewRegistry creates a registry seeded with the fallback pattern.
func NewRegistry(fallbackName string, fallback Pattern) *Registry {
	if fallbackName == "" || fallback == nil {
		panic("pattern: registry needs a fallback")
	}
	return &Registry{
		patterns: map[string]Pattern{fallbackName: fallback},
		fallback: fallbackName,
	}
}

// Register adds a named pattern. Names are unique; re-registering is an
// error so a plugin cannot silently shadow a builtin.
func (r *Registry) Register(name string, p Pattern) error {
	if name == "" {
		return fmt.Errorf("pattern: empty name")
	}
	if p == nil {
		return fmt.Errorf("pattern: nil pattern for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.patterns[name]; exists {
		return fmt.Errorf("pattern: %q already registered", name)
	}
	r.patterns[name] = p
	return nil
}

// Get returns the named pattern, or false when absent.
func (r *Registry) Get(name string) (Pattern, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patterns[name]
	return p, ok
}

// Lookup is Get with an error result for callers that propagate failures.
func (r *Registry) Lookup(name string) (Pattern, error) {
	if p, ok := r.Get(name); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Fallback returns the built-in pattern that is always available.
func (r *Registry) Fallback() (string, Pattern) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback, r.patterns[r.fallback]
}

// List returns all registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.patterns))
	for name := range r.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params returns the parameter schema the named pattern declares, or nil
// when the pattern is unknown or declares none.
func (r *Registry) Params(name string) []ParamSpec {
	p, ok := r.Get(name)
	if !ok {
		return nil
	}
	if pp, ok := p.(ParamProvider); ok {
		return pp.Params()
	}
	return nil
}
