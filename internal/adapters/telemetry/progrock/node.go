package progrock

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/hbuild/internal/tui" //nolint:depguard // Wired in telemetry layer
)

// NodeID is the unique identifier for the telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{tui.StreamNodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			stream, err := graft.Dep[*tui.Stream](ctx)
			if err != nil {
				return nil, err
			}
			return NewRecorder(stream), nil
		},
	})
}
