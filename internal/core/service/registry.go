package service

import (
	"fmt"

	"github.com/webstack/auth-system/internal/core/ports"
)

// Registry holds the configured authentication strategies and allows lookup
// by name. It performs no auth logic itself; callers pick a strategy and
// delegate, so adding variants never changes call sites.
type Registry struct {
	strategies map[string]ports.Strategy
}

// NewRegistry registers the given strategies by name. Names must be unique.
func NewRegistry(list ...ports.Strategy) *Registry {
	m := make(map[string]ports.Strategy, len(list))
	for _, s := range list {
		m[s.Name()] = s
	}
	return &Registry{strategies: m}
}

// Get returns the strategy by name or an error if not registered.
func (r *Registry) Get(name string) (ports.Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown auth strategy: %s", name)
	}
	return s, nil
}
