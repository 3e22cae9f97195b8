package report

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the report printer Graft node.
const NodeID graft.ID = "adapter.report"

func init() {
	graft.Register(graft.Node[*Printer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Printer, error) {
			return NewPrinter(os.Stdout), nil
		},
	})
}
