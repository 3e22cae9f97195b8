// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/hbuild/internal/adapters/cas"
	_ "go.trai.ch/hbuild/internal/adapters/cmake"
	_ "go.trai.ch/hbuild/internal/adapters/config"
	_ "go.trai.ch/hbuild/internal/adapters/fs"
	_ "go.trai.ch/hbuild/internal/adapters/logger"
	_ "go.trai.ch/hbuild/internal/adapters/msvc"
	_ "go.trai.ch/hbuild/internal/adapters/report"
	_ "go.trai.ch/hbuild/internal/adapters/shell"
	_ "go.trai.ch/hbuild/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/hbuild/internal/app"
	_ "go.trai.ch/hbuild/internal/engine/compiler"
	_ "go.trai.ch/hbuild/internal/engine/toolchain"
	_ "go.trai.ch/hbuild/internal/tui"
)
