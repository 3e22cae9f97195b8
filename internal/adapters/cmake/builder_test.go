package cmake_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/hbuild/internal/adapters/cmake"
	"go.trai.ch/hbuild/internal/adapters/logger"
	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/hbuild/internal/core/ports/mocks"
)

func foundAt(path string) func(string, map[string]string) (string, error) {
	return func(string, map[string]string) (string, error) { return path, nil }
}

func newRequest(t *testing.T) ports.DelegateRequest {
	t.Helper()
	conf, err := domain.NewConfiguration("build", "hbuild.yaml", domain.CompilerMSVC, domain.BuildRelease, domain.ArchX86_64)
	require.NoError(t, err)

	target, err := domain.NewTarget("zlib", domain.KindStaticLibrary, nil)
	require.NoError(t, err)
	target.External = &domain.ExternalBuildProps{
		Tool:      domain.ToolCMake,
		Location:  "third_party/zlib",
		Variables: map[string]string{"ZLIB_BUILD_EXAMPLES": "false", "SKIP_INSTALL_ALL": "true", "PREFIX": "z_"},
	}
	return ports.DelegateRequest{Target: target, Location: "/src/third_party/zlib", Conf: conf}
}

func TestBuilder_TwoPhases(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)
	req := newRequest(t)
	buildDir := filepath.Join("build", "x64", "Release", "zlib")

	gomock.InOrder(
		executor.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd domain.Command) (domain.ProcessResult, error) {
				assert.Equal(t, "/usr/bin/cmake", cmd.Name)
				assert.Equal(t, []string{
					"-S", "/src/third_party/zlib", "-B", buildDir,
					"-D", "CMAKE_BUILD_TYPE=Release",
					"-D", "PREFIX=z_",
					"-D", "SKIP_INSTALL_ALL=ON",
					"-D", "ZLIB_BUILD_EXAMPLES=OFF",
				}, cmd.Args)
				return domain.ProcessResult{}, nil
			}),
		executor.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd domain.Command) (domain.ProcessResult, error) {
				assert.Equal(t, []string{"--build", buildDir, "--config", "Release"}, cmd.Args)
				return domain.ProcessResult{}, nil
			}),
	)

	b := cmake.NewBuilder(executor, logger.NewWithWriter(io.Discard)).WithLookPath(foundAt("/usr/bin/cmake"))
	props, err := b.Build(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, props.IsEmpty())
	assert.Equal(t, domain.ToolCMake, b.Tool())
}

func TestBuilder_ConfigureFailureStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ProcessResult{ReturnCode: 1, Output: "CMake Error"}, nil).Times(1)

	b := cmake.NewBuilder(executor, logger.NewWithWriter(io.Discard)).WithLookPath(foundAt("cmake"))
	_, err := b.Build(context.Background(), newRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDelegateFailed)
}

func TestBuilder_CMakeNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	b := cmake.NewBuilder(executor, logger.NewWithWriter(io.Discard)).WithLookPath(
		func(string, map[string]string) (string, error) { return "", errors.New("not found") })
	_, err := b.Build(context.Background(), newRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrToolNotFound)
}
