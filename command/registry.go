package command

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Handler represents a host capability
type Handler interface {
	Invoke(ctx context.Context, params map[string]any) (any, error)
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(ctx context.Context, params map[string]any) (any, error)

func (f HandlerFunc) Invoke(ctx context.Context, params map[string]any) (any, error) {
	return f(ctx, params)
}

// Registration binds a spec to its handler
type Registration struct {
	Spec    *Spec
	Handler Handler
}

// Registry maps command names to registrations
type Registry struct {
	mux     sync.RWMutex
	entries map[string]*Registration
	frozen  bool
}

// Register adds a handler for spec.Name
func (r *Registry) Register(spec *Spec, handler Handler) error {
	if spec == nil || spec.Name == "" {
		return fmt.Errorf("command spec name was empty")
	}
	if handler == nil {
		return fmt.Errorf("command %v: handler was nil", spec.Name)
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.frozen {
		return fmt.Errorf("command %v: %w", spec.Name, ErrFrozen)
	}
	if _, ok := r.entries[spec.Name]; ok {
		return fmt.Errorf("command %v: already registered", spec.Name)
	}
	r.entries[spec.Name] = &Registration{Spec: spec, Handler: handler}
	return nil
}

// RegisterFunc adds a function handler for spec.Name
func (r *Registry) RegisterFunc(spec *Spec, fn func(ctx context.Context, params map[string]any) (any, error)) error {
	return r.Register(spec, HandlerFunc(fn))
}

// Lookup returns a registration by command name
func (r *Registry) Lookup(name string) (*Registration, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret, ok := r.entries[name]
	return ret, ok
}

// Specs returns registered specs sorted by name
func (r *Registry) Specs() []*Spec {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]*Spec, 0, len(r.entries))
	for _, entry := range r.entries {
		ret = append(ret, entry.Spec)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// Freeze rejects further registration
func (r *Registry) Freeze() {
	r.mux.Lock()
	r.frozen = true
	r.mux.Unlock()
}

// Thaw allows registration again, it is called once a server stops
func (r *Registry) Thaw() {
	r.mux.Lock()
	r.frozen = false
	r.mux.Unlock()
}

// Frozen returns true while registration is rejected
func (r *Registry) Frozen() bool {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.frozen
}

// Len returns number of registered commands
func (r *Registry) Len() int {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return len(r.entries)
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Registration)}
}
