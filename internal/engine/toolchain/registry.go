// Package toolchain resolves compiler backends by id or by probing the host.
package toolchain

import (
	"context"
	"sync"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BackendRegistry = (*Registry)(nil)

// Registry implements ports.BackendRegistry.
// Detect probes backends in registration order.
type Registry struct {
	mu       sync.RWMutex
	order    []domain.CompilerID
	backends map[domain.CompilerID]ports.Backend
}

// NewRegistry creates a registry holding the given backends.
func NewRegistry(backends ...ports.Backend) *Registry {
	r := &Registry{backends: make(map[domain.CompilerID]ports.Backend)}
	for _, b := range backends {
		r.Register(b)
	}
	return r
}

// Register adds a backend. A backend registered under an existing id replaces it.
func (r *Registry) Register(b ports.Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.backends[b.ID()]; !exists {
		r.order = append(r.order, b.ID())
	}
	r.backends[b.ID()] = b
}

// Lookup returns the backend registered under id.
func (r *Registry) Lookup(id domain.CompilerID) (ports.Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[id]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownCompiler, "compiler", string(id))
	}
	return b, nil
}

// Detect returns the first registered backend reporting itself available.
func (r *Registry) Detect(ctx context.Context) (ports.Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if b := r.backends[id]; b.Available(ctx) {
			return b, nil
		}
	}
	return nil, zerr.With(domain.ErrNoCompilerDetected, "registered", len(r.order))
}
