package commands_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/hbuild/cmd/hbuild/commands"
	"go.trai.ch/hbuild/internal/adapters/fs"
	"go.trai.ch/hbuild/internal/adapters/logger"
	"go.trai.ch/hbuild/internal/adapters/report"
	"go.trai.ch/hbuild/internal/app"
	"go.trai.ch/hbuild/internal/build"
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

func newCLI(t *testing.T) (*commands.CLI, *project, *mocks.MockTelemetry) {
	t.Helper()
	ctrl := gomock.NewController(t)
	p := &project{MockProjectCompiler: mocks.NewMockProjectCompiler(ctrl), reporter: domain.NewReporter()}
	telemetry := mocks.NewMockTelemetry(ctrl)
	a := app.New(p, report.NewPrinter(io.Discard), fs.NewWalker(), telemetry, logger.NewWithWriter(io.Discard))
	return commands.New(a), p, telemetry
}

func TestBuild_Flags(t *testing.T) {
	dir := t.TempDir()
	buildFile := filepath.Join(dir, "project.hcl")
	require.NoError(t, os.WriteFile(buildFile, []byte("version = \"1\"\n"), 0o600))

	cli, p, telemetry := newCLI(t)
	p.EXPECT().CompileProject(gomock.Any(), ports.ProjectOptions{
		BuildFile:    buildFile,
		Prefix:       filepath.Join(dir, "out"),
		Compiler:     domain.CompilerMSVC,
		BuildType:    domain.BuildRelease,
		Architecture: domain.ArchX86,
		Reconfigure:  true,
		Timeout:      90 * time.Second,
	}).Return(domain.TargetProperties{}, nil)
	telemetry.EXPECT().Close().Return(nil)

	cli.SetArgs([]string{
		"build", "project.hcl",
		"-C", dir,
		"--prefix", "out",
		"--compiler", "msvc",
		"--build-type", "Release",
		"--arch", "x86",
		"--reconfigure",
		"--timeout", "90s",
		"-e", "-n", "-v",
	})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestBuild_FileFlag(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "engine")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	buildFile := filepath.Join(sub, domain.DefaultBuildFile)
	require.NoError(t, os.WriteFile(buildFile, []byte("version: \"1\"\n"), 0o600))

	cli, p, telemetry := newCLI(t)
	p.EXPECT().CompileProject(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts ports.ProjectOptions) (domain.TargetProperties, error) {
			assert.Equal(t, buildFile, opts.BuildFile)
			assert.Equal(t, filepath.Join(dir, domain.DefaultPrefix), opts.Prefix)
			return domain.TargetProperties{}, nil
		})
	telemetry.EXPECT().Close().Return(nil)

	cli.SetArgs([]string{"build", "-C", dir, "-f", "engine"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestBuild_TooManyArgs(t *testing.T) {
	cli, _, _ := newCLI(t)
	cli.SetArgs([]string{"build", "a.yaml", "b.yaml"})
	assert.Error(t, cli.Execute(context.Background()))
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "build", "x32", "Release")
	require.NoError(t, os.MkdirAll(out, 0o750))

	cli, _, _ := newCLI(t)
	cli.SetArgs([]string{"clean", "-C", dir, "--build-type", "release", "--arch", "x86"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.NoDirExists(t, out)
	assert.DirExists(t, filepath.Join(dir, "build"))
}

func TestVersion(t *testing.T) {
	cli, _, _ := newCLI(t)
	var out bytes.Buffer
	cli.SetOutput(&out)
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "hbuild version "+build.Version+"\n", out.String())
}

func TestRoot_Help(t *testing.T) {
	cli, _, _ := newCLI(t)
	var out bytes.Buffer
	cli.SetOutput(&out)
	cli.SetArgs([]string{"--help"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "build")
	assert.Contains(t, out.String(), "clean")
}
