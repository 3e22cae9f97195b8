package delegate_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/hbuild/internal/adapters/logger"
	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/hbuild/internal/core/ports/mocks"
	"go.trai.ch/hbuild/internal/engine/delegate"
)

func TestRegistry_Lookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	cmake := mocks.NewMockExternalBuilder(ctrl)
	cmake.EXPECT().Tool().Return(domain.ToolCMake).AnyTimes()

	r := delegate.NewRegistry(cmake)

	got, err := r.Lookup(domain.ToolCMake)
	require.NoError(t, err)
	assert.Same(t, cmake, got)

	_, err = r.Lookup(domain.ToolSelf)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnsupportedTool.Error())
}

func TestSelf_Build(t *testing.T) {
	ctrl := gomock.NewController(t)
	project := mocks.NewMockProjectCompiler(ctrl)

	conf, err := domain.NewConfiguration("/out", "/src/hbuild.yaml", domain.CompilerMSVC, domain.BuildRelease, domain.ArchX86_64)
	require.NoError(t, err)
	conf.Timeout = time.Minute

	target, err := domain.NewTarget("sdl", domain.KindDynamicLibrary, nil)
	require.NoError(t, err)
	target.External = &domain.ExternalBuildProps{Tool: domain.ToolSelf, Location: "vendor/sdl"}

	location := filepath.Join("/src", "vendor", "sdl")
	want := domain.TargetProperties{Includes: []string{"include"}}
	project.EXPECT().CompileProject(gomock.Any(), ports.ProjectOptions{
		BuildFile:    filepath.Join(location, domain.DefaultBuildFile),
		Prefix:       "/out",
		Compiler:     domain.CompilerMSVC,
		BuildType:    domain.BuildRelease,
		Architecture: domain.ArchX86_64,
		Timeout:      time.Minute,
	}).Return(want, nil)

	self := delegate.NewSelf(project, logger.NewWithWriter(io.Discard))
	got, err := self.Build(context.Background(), ports.DelegateRequest{Target: target, Location: location, Conf: conf})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, domain.ToolSelf, self.Tool())
}

func TestSelf_CustomBuildFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	project := mocks.NewMockProjectCompiler(ctrl)

	conf, err := domain.NewConfiguration("/out", "/src/hbuild.yaml", domain.CompilerMSVC, domain.BuildDebug, domain.ArchX86_64)
	require.NoError(t, err)

	target, err := domain.NewTarget("sdl", domain.KindStaticLibrary, nil)
	require.NoError(t, err)
	target.External = &domain.ExternalBuildProps{Tool: domain.ToolSelf, BuildFile: "sdl.hcl"}

	project.EXPECT().CompileProject(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, opts ports.ProjectOptions) (domain.TargetProperties, error) {
			assert.Equal(t, filepath.Join("/vendor", "sdl.hcl"), opts.BuildFile)
			return domain.TargetProperties{}, nil
		})

	_, err = delegate.NewSelf(project, logger.NewWithWriter(io.Discard)).
		Build(context.Background(), ports.DelegateRequest{Target: target, Location: "/vendor", Conf: conf})
	require.NoError(t, err)
}
