// Package delegate dispatches externally built targets to the build system that owns them.
package delegate

import (
	"sync"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry maps external tools to their builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[domain.ExternalTool]ports.ExternalBuilder
}

// NewRegistry creates a registry holding the given builders.
func NewRegistry(builders ...ports.ExternalBuilder) *Registry {
	r := &Registry{builders: make(map[domain.ExternalTool]ports.ExternalBuilder)}
	for _, b := range builders {
		r.Register(b)
	}
	return r
}

// Register adds a builder, replacing any builder of the same tool.
func (r *Registry) Register(b ports.ExternalBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[b.Tool()] = b
}

// Lookup returns the builder of tool.
func (r *Registry) Lookup(tool domain.ExternalTool) (ports.ExternalBuilder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[tool]
	if !ok {
		return nil, zerr.With(domain.ErrUnsupportedTool, "tool", string(tool))
	}
	return b, nil
}
