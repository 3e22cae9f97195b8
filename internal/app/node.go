package app

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/hbuild/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/hbuild/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/hbuild/internal/adapters/report"             //nolint:depguard // Wired in app layer
	"go.trai.ch/hbuild/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/hbuild/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/hbuild/internal/engine/compiler"
	"go.trai.ch/hbuild/internal/tui"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			compiler.NodeID,
			report.NodeID,
			fs.WalkerNodeID,
			progrock.NodeID,
			logger.NodeID,
			shell.NodeID,
			tui.ProgressNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	project, err := graft.Dep[*compiler.Compiler](ctx)
	if err != nil {
		return nil, err
	}

	printer, err := graft.Dep[*report.Printer](ctx)
	if err != nil {
		return nil, err
	}

	walker, err := graft.Dep[*fs.Walker](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[*shell.Executor](ctx)
	if err != nil {
		return nil, err
	}

	progress, err := graft.Dep[*tui.Progress](ctx)
	if err != nil {
		return nil, err
	}

	return New(project, printer, walker, telemetry, log).
		WithExecSettings(executor).
		WithProgress(progress), nil
}
