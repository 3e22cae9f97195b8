package delegate

import (
	"context"
	"path/filepath"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
)

var _ ports.ExternalBuilder = (*Self)(nil)

// Self builds a target by compiling a nested build description with the
// same prefix, compiler, build type and architecture as the current build.
type Self struct {
	project ports.ProjectCompiler
	logger  ports.Logger
}

// NewSelf creates a new Self delegate.
func NewSelf(project ports.ProjectCompiler, logger ports.Logger) *Self {
	return &Self{
		project: project,
		logger:  logger,
	}
}

// Tool returns domain.ToolSelf.
func (s *Self) Tool() domain.ExternalTool {
	return domain.ToolSelf
}

// Build compiles the nested description and returns its aggregated public
// properties. Include paths are left relative to req.Location.
func (s *Self) Build(ctx context.Context, req ports.DelegateRequest) (domain.TargetProperties, error) {
	buildFile := domain.DefaultBuildFile
	if req.Target.External != nil && req.Target.External.BuildFile != "" {
		buildFile = req.Target.External.BuildFile
	}
	if !filepath.IsAbs(buildFile) {
		buildFile = filepath.Join(req.Location, buildFile)
	}

	s.logger.Info("delegating target", "target", req.Target.Name.String(), "build_file", buildFile)

	return s.project.CompileProject(ctx, ports.ProjectOptions{
		BuildFile:    buildFile,
		Prefix:       req.Conf.Prefix,
		Compiler:     req.Conf.Compiler,
		BuildType:    req.Conf.BuildType,
		Architecture: req.Conf.Architecture,
		Timeout:      req.Conf.Timeout,
	})
}
