// Package cmake delegates targets to CMake using its configure and build phases.
package cmake

import (
	"context"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/hbuild/internal/adapters/shell"
	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ExternalBuilder = (*Builder)(nil)

// Builder implements ports.ExternalBuilder for CMake projects.
type Builder struct {
	executor ports.Executor
	logger   ports.Logger
	lookPath func(file string, env map[string]string) (string, error)
}

// NewBuilder creates a new CMake builder.
func NewBuilder(executor ports.Executor, logger ports.Logger) *Builder {
	return &Builder{
		executor: executor,
		logger:   logger,
		lookPath: shell.LookPath,
	}
}

// Tool returns domain.ToolCMake.
func (b *Builder) Tool() domain.ExternalTool {
	return domain.ToolCMake
}

// Build configures and builds the project at req.Location into the target's
// build folder. CMake reports no properties, so dependents of the target
// declare its includes and macros themselves.
func (b *Builder) Build(ctx context.Context, req ports.DelegateRequest) (domain.TargetProperties, error) {
	cmake, err := b.lookPath("cmake", req.Conf.Environment)
	if err != nil {
		return domain.TargetProperties{}, zerr.With(zerr.Wrap(domain.ErrToolNotFound, err.Error()), "tool", string(domain.ToolCMake))
	}

	buildDir := req.Conf.BuildDir(req.Target)
	buildType := string(req.Conf.BuildType)

	configure := []string{"-S", req.Location, "-B", buildDir, "-D", "CMAKE_BUILD_TYPE=" + buildType}
	configure = append(configure, defineArgs(req.Target.External.Variables)...)

	phases := []struct {
		name string
		args []string
	}{
		{name: "configure", args: configure},
		{name: "build", args: []string{"--build", buildDir, "--config", buildType}},
	}

	for _, phase := range phases {
		b.logger.Info("running cmake", "target", req.Target.Name.String(), "phase", phase.name)
		res, err := b.executor.Run(ctx, domain.Command{
			Name:    cmake,
			Args:    phase.args,
			Dir:     req.Location,
			Env:     req.Conf.Environment,
			Timeout: req.Conf.Timeout,
		})
		if err != nil {
			return domain.TargetProperties{}, err
		}
		if !res.Success() {
			return domain.TargetProperties{}, zerr.With(zerr.With(zerr.With(
				zerr.Wrap(domain.ErrDelegateFailed, res.Output),
				"target", req.Target.Name.String()),
				"phase", phase.name),
				"return_code", res.ReturnCode)
		}
	}

	return domain.TargetProperties{}, nil
}

// defineArgs renders -D options sorted by name. Boolean values become ON or OFF.
func defineArgs(vars map[string]string) []string {
	args := make([]string, 0, 2*len(vars))
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		args = append(args, "-D", name+"="+formatValue(vars[name]))
	}
	return args
}

func formatValue(v string) string {
	switch strings.ToLower(v) {
	case "true", "on", "yes":
		return "ON"
	case "false", "off", "no":
		return "OFF"
	default:
		return v
	}
}
