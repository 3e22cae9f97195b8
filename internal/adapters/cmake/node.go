package cmake

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/hbuild/internal/adapters/logger"
	"go.trai.ch/hbuild/internal/adapters/shell"
	"go.trai.ch/hbuild/internal/core/ports"
)

// NodeID is the unique identifier for the CMake builder Graft node.
const NodeID graft.ID = "adapter.cmake"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			executor, err := graft.Dep[*shell.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(executor, log), nil
		},
	})
}
