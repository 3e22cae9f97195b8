package toolchain

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/hbuild/internal/adapters/msvc"
	"go.trai.ch/hbuild/internal/core/ports"
)

// NodeID is the unique identifier for the backend registry Graft node.
const NodeID graft.ID = "engine.toolchain"

func init() {
	graft.Register(graft.Node[ports.BackendRegistry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{msvc.NodeID},
		Run: func(ctx context.Context) (ports.BackendRegistry, error) {
			backend, err := graft.Dep[*msvc.Backend](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(backend), nil
		},
	})
}
