package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/hbuild/internal/adapters/fs"
	"go.trai.ch/hbuild/internal/adapters/logger"
	"go.trai.ch/hbuild/internal/adapters/report"
	"go.trai.ch/hbuild/internal/app"
	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/hbuild/internal/core/ports/mocks"
)

type project struct {
	*mocks.MockProjectCompiler
	reporter *domain.Reporter
}

func (p *project) Reporter() *domain.Reporter { return p.reporter }

func (p *project) ResetReporter() { p.reporter = domain.NewReporter() }

type execSettings struct {
	echo, dryRun bool
}

func (e *execSettings) SetEcho(echo bool) { e.echo = echo }

func (e *execSettings) SetDryRun(dryRun bool) { e.dryRun = dryRun }

type fixture struct {
	dir       string
	project   *project
	telemetry *mocks.MockTelemetry
	exec      *execSettings
	out       *bytes.Buffer
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		dir:       t.TempDir(),
		project:   &project{MockProjectCompiler: mocks.NewMockProjectCompiler(ctrl), reporter: domain.NewReporter()},
		telemetry: mocks.NewMockTelemetry(ctrl),
		exec:      &execSettings{},
		out:       &bytes.Buffer{},
	}
	f.app = app.New(
		f.project,
		report.NewPrinter(f.out),
		fs.NewWalker(),
		f.telemetry,
		logger.NewWithWriter(io.Discard),
	).WithExecSettings(f.exec)
	return f
}

func (f *fixture) writeDescription(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\n"), 0o600))
	return path
}

func TestApp_Build(t *testing.T) {
	f := newFixture(t)
	buildFile := f.writeDescription(t, domain.DefaultBuildFile)

	f.project.EXPECT().CompileProject(gomock.Any(), ports.ProjectOptions{
		BuildFile:    buildFile,
		Prefix:       filepath.Join(f.dir, "out"),
		Compiler:     domain.CompilerMSVC,
		BuildType:    domain.BuildRelease,
		Architecture: domain.ArchX86,
		Reconfigure:  true,
		Timeout:      time.Minute,
	}).DoAndReturn(func(context.Context, ports.ProjectOptions) (domain.TargetProperties, error) {
		f.project.reporter.Increment(domain.CounterLinks)
		return domain.TargetProperties{}, nil
	})
	f.telemetry.EXPECT().Close().Return(nil)

	err := f.app.Build(context.Background(), app.BuildOptions{
		Dir:          f.dir,
		Prefix:       "out",
		Compiler:     "msvc",
		BuildType:    "release",
		Architecture: "x86",
		Reconfigure:  true,
		Timeout:      time.Minute,
		Echo:         true,
		DryRun:       true,
	})
	require.NoError(t, err)

	assert.True(t, f.exec.echo)
	assert.True(t, f.exec.dryRun)
	assert.Contains(t, f.out.String(), "Build summary")
	assert.Contains(t, f.out.String(), "links 1")
}

func TestApp_Build_Defaults(t *testing.T) {
	f := newFixture(t)
	buildFile := f.writeDescription(t, "hbuild.hcl")

	f.project.EXPECT().CompileProject(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts ports.ProjectOptions) (domain.TargetProperties, error) {
			assert.Equal(t, buildFile, opts.BuildFile)
			assert.Equal(t, filepath.Join(f.dir, domain.DefaultPrefix), opts.Prefix)
			assert.Empty(t, opts.Compiler)
			assert.Equal(t, domain.BuildDebug, opts.BuildType)
			assert.Equal(t, domain.ArchX86_64, opts.Architecture)
			return domain.TargetProperties{}, nil
		})
	f.telemetry.EXPECT().Close().Return(nil)

	require.NoError(t, f.app.Build(context.Background(), app.BuildOptions{Dir: f.dir}))
	assert.False(t, f.exec.echo)
}

func TestApp_Build_FailureStillPrintsReport(t *testing.T) {
	f := newFixture(t)
	f.writeDescription(t, domain.DefaultBuildFile)

	failure := &domain.BackendError{Step: domain.StepLink, Target: "app", ReturnCode: 1120}
	f.project.EXPECT().CompileProject(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, ports.ProjectOptions) (domain.TargetProperties, error) {
			f.project.reporter.RecordArtefact(domain.Artefact{Target: "app", Status: domain.StatusFailed})
			return domain.TargetProperties{}, failure
		})
	f.telemetry.EXPECT().Close().Return(errors.New("tape closed"))

	err := f.app.Build(context.Background(), app.BuildOptions{Dir: f.dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLinkFailed)
	assert.ErrorContains(t, err, "tape closed")
	assert.Contains(t, f.out.String(), "failed")
}

func TestApp_Build_MissingDescription(t *testing.T) {
	f := newFixture(t)

	err := f.app.Build(context.Background(), app.BuildOptions{Dir: f.dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestApp_Build_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		opts app.BuildOptions
		err  error
	}{
		{name: "build type", opts: app.BuildOptions{BuildType: "profile"}, err: domain.ErrUnknownBuildType},
		{name: "architecture", opts: app.BuildOptions{Architecture: "arm64"}, err: domain.ErrUnknownArchitecture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.writeDescription(t, domain.DefaultBuildFile)
			tt.opts.Dir = f.dir

			err := f.app.Build(context.Background(), tt.opts)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.err.Error())
		})
	}
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)
	debug := filepath.Join(f.dir, "build", "x64", "Debug")
	release := filepath.Join(f.dir, "build", "x64", "Release")
	for _, dir := range []string{debug, release} {
		require.NoError(t, os.MkdirAll(dir, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "app.exe"), []byte("exe"), 0o600))
	}

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{Dir: f.dir}))
	assert.NoDirExists(t, debug)
	assert.DirExists(t, release)

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{Dir: f.dir, All: true}))
	assert.NoDirExists(t, filepath.Join(f.dir, "build"))
}

type progressView struct {
	runs int
}

func (p *progressView) Run(context.Context) error {
	p.runs++
	return nil
}

func TestApp_Build_Progress(t *testing.T) {
	f := newFixture(t)
	f.writeDescription(t, domain.DefaultBuildFile)
	view := &progressView{}
	f.app.WithProgress(view)

	f.project.EXPECT().CompileProject(gomock.Any(), gomock.Any()).Return(domain.TargetProperties{}, nil).Times(2)
	f.telemetry.EXPECT().Close().Return(nil).Times(2)

	require.NoError(t, f.app.Build(context.Background(), app.BuildOptions{Dir: f.dir}))
	assert.Zero(t, view.runs)

	require.NoError(t, f.app.Build(context.Background(), app.BuildOptions{Dir: f.dir, Progress: true}))
	assert.Equal(t, 1, view.runs)
}
