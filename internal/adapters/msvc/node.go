package msvc

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/hbuild/internal/adapters/logger"
	"go.trai.ch/hbuild/internal/adapters/shell"
	"go.trai.ch/hbuild/internal/core/ports"
)

// NodeID is the unique identifier for the MSVC backend Graft node.
const NodeID graft.ID = "adapter.msvc"

func init() {
	graft.Register(graft.Node[*Backend]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Backend, error) {
			executor, err := graft.Dep[*shell.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBackend(executor, NewEnvironmentProbe(executor, log)), nil
		},
	})
}
