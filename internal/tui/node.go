package tui

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

const (
	// StreamNodeID is the unique identifier for the progress stream Graft node.
	StreamNodeID graft.ID = "tui.stream"
	// ProgressNodeID is the unique identifier for the progress view Graft node.
	ProgressNodeID graft.ID = "tui.progress"
)

func init() {
	graft.Register(graft.Node[*Stream]{
		ID:        StreamNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Stream, error) {
			return NewStream(), nil
		},
	})

	graft.Register(graft.Node[*Progress]{
		ID:        ProgressNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{StreamNodeID},
		Run: func(ctx context.Context) (*Progress, error) {
			stream, err := graft.Dep[*Stream](ctx)
			if err != nil {
				return nil, err
			}
			return NewProgress(stream, os.Stdout), nil
		},
	})
}
