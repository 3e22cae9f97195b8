package ports

import (
	"context"
	"time"

	"go.trai.ch/hbuild/internal/core/domain"
)

// DelegateRequest describes one delegated target.
type DelegateRequest struct {
	Target *domain.Target
	// Location is the external project directory, already resolved to an absolute path.
	Location string
	Conf     *domain.Configuration
}

// ExternalBuilder builds a target with another build system.
//
//go:generate go run go.uber.org/mock/mockgen -source=delegate.go -destination=mocks/mock_delegate.go -package=mocks
type ExternalBuilder interface {
	// Tool returns the external tool this builder handles.
	Tool() domain.ExternalTool

	// Build runs the external build and returns the public properties it reports.
	// Include paths in the result may be relative to req.Location.
	Build(ctx context.Context, req DelegateRequest) (domain.TargetProperties, error)
}

// ProjectOptions are the inputs of a whole project build.
type ProjectOptions struct {
	BuildFile    string
	Prefix       string
	Compiler     domain.CompilerID
	BuildType    domain.BuildType
	Architecture domain.Architecture
	// Reconfigure forces the toolchain environment to be captured again.
	Reconfigure bool
	// Timeout bounds every subprocess of the build. Zero means no timeout.
	Timeout time.Duration
}

// ProjectCompiler compiles every package of a build description.
type ProjectCompiler interface {
	CompileProject(ctx context.Context, opts ProjectOptions) (domain.TargetProperties, error)
}
