package compiler

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/hbuild/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/hbuild/internal/adapters/cmake"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/hbuild/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/hbuild/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/hbuild/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/hbuild/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/hbuild/internal/engine/delegate"
	"go.trai.ch/hbuild/internal/engine/toolchain"
)

// NodeID is the unique identifier for the compiler Graft node.
const NodeID graft.ID = "engine.compiler"

func init() {
	graft.Register(graft.Node[*Compiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			toolchain.NodeID,
			config.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			progrock.NodeID,
			cmake.NodeID,
		},
		Run: runNode,
	})
}

func runNode(ctx context.Context) (*Compiler, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[ports.BackendRegistry](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.DescriptionLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	cmakeBuilder, err := graft.Dep[*cmake.Builder](ctx)
	if err != nil {
		return nil, err
	}

	delegates := delegate.NewRegistry(cmakeBuilder)
	c := New(log, registry, loader, store, hasher, verifier, telemetry, delegates)
	delegates.Register(delegate.NewSelf(c, log))
	return c, nil
}
