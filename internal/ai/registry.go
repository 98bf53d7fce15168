package ai

import (
	"strings"
	"sync"
)

// Registry maps provider identifiers to adapters. The set is closed after
// startup registration; Resolve rejects anything outside it.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

func (r *Registry) Register(p Provider) {
	name := strings.ToLower(strings.TrimSpace(p.Name()))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

func (r *Registry) Resolve(name string) (Provider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	p, ok := r.providers[key]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedProviderError{Name: name}
	}
	return p, nil
}

// Names returns the registered identifiers, for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.providers))
	for name := range r.providers {
		out = append(out, name)
	}
	return out
}
