// Package app implements the application layer for hbuild.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/hbuild/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Project compiles build descriptions and keeps a report of the last build.
type Project interface {
	ports.ProjectCompiler
	Reporter() *domain.Reporter
	ResetReporter()
}

// ReportPrinter renders a build report.
type ReportPrinter interface {
	Print(r *domain.Reporter) error
}

// Cleaner removes an output folder and returns the number of files it held.
type Cleaner interface {
	Clean(root string) (int, error)
}

// LogSettings is implemented by loggers whose level and format change at runtime.
type LogSettings interface {
	SetVerbose(verbose bool)
	SetJSON(enabled bool)
}

// ExecSettings is implemented by executors that can echo or skip commands.
type ExecSettings interface {
	SetEcho(echo bool)
	SetDryRun(dryRun bool)
}

// ProgressView draws build progress until the telemetry session is closed.
type ProgressView interface {
	Run(ctx context.Context) error
}

// BuildOptions are the command line inputs of a build.
type BuildOptions struct {
	// Dir is the directory to run in. Relative paths resolve against it.
	Dir string
	// File is the build description, or a directory holding one.
	File         string
	Prefix       string
	Compiler     string
	BuildType    string
	Architecture string
	Reconfigure  bool
	Timeout      time.Duration

	Verbose bool
	JSON    bool
	Echo    bool
	DryRun  bool
	// Progress draws a live view of the build.
	Progress bool
}

// CleanOptions are the command line inputs of a clean.
type CleanOptions struct {
	Dir          string
	Prefix       string
	BuildType    string
	Architecture string
	// All removes the whole prefix instead of one output folder.
	All bool
}

// App represents the main application logic.
type App struct {
	project   Project
	printer   ReportPrinter
	cleaner   Cleaner
	telemetry ports.Telemetry
	logger    ports.Logger
	logs      LogSettings
	exec      ExecSettings
	progress  ProgressView
}

// New creates a new App instance.
func New(project Project, printer ReportPrinter, cleaner Cleaner, telemetry ports.Telemetry, logger ports.Logger) *App {
	a := &App{
		project:   project,
		printer:   printer,
		cleaner:   cleaner,
		telemetry: telemetry,
		logger:    logger,
	}
	if logs, ok := logger.(LogSettings); ok {
		a.logs = logs
	}
	return a
}

// WithExecSettings attaches the executor toggled by the echo and dry-run options.
func (a *App) WithExecSettings(exec ExecSettings) *App {
	a.exec = exec
	return a
}

// WithProgress attaches the view drawn when a build asks for progress.
func (a *App) WithProgress(view ProgressView) *App {
	a.progress = view
	return a
}

// Build compiles the build description selected by opts and prints the report.
// The report is printed even when the build fails.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	if a.logs != nil {
		a.logs.SetVerbose(opts.Verbose)
		a.logs.SetJSON(opts.JSON)
	}
	if a.exec != nil {
		a.exec.SetEcho(opts.Echo)
		a.exec.SetDryRun(opts.DryRun)
	}

	dir, err := workDir(opts.Dir)
	if err != nil {
		return err
	}

	file := opts.File
	if file == "" {
		file = dir
	}
	buildFile, err := config.ResolveBuildFile(resolve(file, dir))
	if err != nil {
		return err
	}

	buildType, arch, err := parseTarget(opts.BuildType, opts.Architecture)
	if err != nil {
		return err
	}

	var view errgroup.Group
	if opts.Progress && a.progress != nil {
		view.Go(func() error { return a.progress.Run(ctx) })
	}

	a.project.ResetReporter()
	_, buildErr := a.project.CompileProject(ctx, ports.ProjectOptions{
		BuildFile:    buildFile,
		Prefix:       prefix(opts.Prefix, dir),
		Compiler:     domain.CompilerID(opts.Compiler),
		BuildType:    buildType,
		Architecture: arch,
		Reconfigure:  opts.Reconfigure,
		Timeout:      opts.Timeout,
	})

	var errs []error
	if buildErr != nil {
		errs = append(errs, zerr.Wrap(buildErr, "build failed"))
	}
	if err := a.telemetry.Close(); err != nil {
		errs = append(errs, zerr.Wrap(err, "failed to close telemetry"))
	}
	if err := view.Wait(); err != nil {
		errs = append(errs, err)
	}
	if err := a.printer.Print(a.project.Reporter()); err != nil {
		errs = append(errs, zerr.Wrap(err, "failed to print report"))
	}
	return errors.Join(errs...)
}

// Clean removes the output folder of one build type and architecture,
// or the whole prefix when opts.All is set.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	dir, err := workDir(opts.Dir)
	if err != nil {
		return err
	}

	root := prefix(opts.Prefix, dir)
	if !opts.All {
		buildType, arch, err := parseTarget(opts.BuildType, opts.Architecture)
		if err != nil {
			return err
		}
		conf, err := domain.NewConfiguration(root, "", "", buildType, arch)
		if err != nil {
			return err
		}
		root = conf.OutputFolder()
	}

	removed, err := a.cleaner.Clean(root)
	if err != nil {
		return err
	}
	a.logger.Info("output removed", "path", root, "files", removed)
	return nil
}

func workDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve directory"), "path", dir)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, "not a directory"), "path", abs)
	}
	return abs, nil
}

func resolve(p, dir string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func prefix(p, dir string) string {
	if p == "" {
		p = domain.DefaultPrefix
	}
	return resolve(p, dir)
}

func parseTarget(buildType, arch string) (domain.BuildType, domain.Architecture, error) {
	if buildType == "" {
		buildType = string(domain.BuildDebug)
	}
	bt, err := domain.ParseBuildType(buildType)
	if err != nil {
		return "", "", err
	}

	a := domain.ArchX86_64
	if arch != "" {
		a = domain.Architecture(arch)
	}
	if _, err := a.Bitness(); err != nil {
		return "", "", err
	}
	return bt, a, nil
}
