package config

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/hbuild/internal/adapters/fs"
	"go.trai.ch/hbuild/internal/adapters/logger"
	"go.trai.ch/hbuild/internal/core/ports"
)

// NodeID is the unique identifier for the description loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.DescriptionLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.ResolverNodeID},
		Run: func(ctx context.Context) (ports.DescriptionLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*fs.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log, resolver), nil
		},
	})
}
