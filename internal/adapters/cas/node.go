package cas

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/hbuild/internal/adapters/logger"
	"go.trai.ch/hbuild/internal/core/ports"
)

// NodeID is the unique identifier for the object cache store Graft node.
const NodeID graft.ID = "adapter.cache_store"

func init() {
	graft.Register(graft.Node[ports.CacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(log), nil
		},
	})
}
