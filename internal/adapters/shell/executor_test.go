package shell_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/hbuild/internal/adapters/shell"
	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports/mocks"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecutor_Run_MultiLineOutput(t *testing.T) {
	requireShell(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug("line1").Times(1)
	mockLogger.EXPECT().Debug("line2").Times(1)

	executor := shell.NewExecutor(mockLogger)

	res, err := executor.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo line1; echo line2"},
		Dir:  t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ReturnCode)
	assert.Equal(t, "line1\nline2\n", res.Output)
}

func TestExecutor_Run_FragmentedOutput(t *testing.T) {
	requireShell(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug("part1part2").Times(1)

	executor := shell.NewExecutor(mockLogger)

	_, err := executor.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "printf part1; sleep 0.1; echo part2"},
	})
	require.NoError(t, err)
}

func TestExecutor_Run_NonZeroExitIsResult(t *testing.T) {
	requireShell(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	executor := shell.NewExecutor(mockLogger)

	res, err := executor.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo broken; exit 42"},
	})
	require.NoError(t, err)
	assert.Equal(t, 42, res.ReturnCode)
	assert.False(t, res.Success())
	assert.Contains(t, res.Output, "broken")
}

func TestExecutor_Run_InvalidCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)

	_, err := executor.Run(context.Background(), domain.Command{Name: "nonexistent-command-xyz123"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCommandStartFailed))
}

func TestExecutor_Run_Timeout(t *testing.T) {
	requireShell(t)
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)

	_, err := executor.Run(context.Background(), domain.Command{
		Name:    "sh",
		Args:    []string{"-c", "sleep 5"},
		Timeout: 50 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCommandTimeout))
}

func TestExecutor_Run_EnvironmentOverlay(t *testing.T) {
	requireShell(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug("toolchain-value").Times(1)

	executor := shell.NewExecutor(mockLogger)

	_, err := executor.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo $HBUILD_TEST_VAR"},
		Env:  map[string]string{"HBUILD_TEST_VAR": "toolchain-value"},
	})
	require.NoError(t, err)
}

func TestExecutor_Run_ToolchainPathFirst(t *testing.T) {
	requireShell(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug("from toolchain").Times(1)

	toolDir := t.TempDir()
	//nolint:gosec // test requires an executable file
	require.NoError(t, os.WriteFile(filepath.Join(toolDir, "hbuild-fake-cl"), []byte("#!/bin/sh\necho from toolchain\n"), 0o700))

	executor := shell.NewExecutor(mockLogger)

	_, err := executor.Run(context.Background(), domain.Command{
		Name: "hbuild-fake-cl",
		Env:  map[string]string{"PATH": toolDir},
	})
	require.NoError(t, err)

	path, err := shell.LookPath("hbuild-fake-cl", map[string]string{"PATH": toolDir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(toolDir, "hbuild-fake-cl"), path)
}

func TestExecutor_Run_EchoAndDryRun(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("exec", "command", `cl.exe /nologo "C:\Program Files\x.c"`).Times(1)

	executor := shell.NewExecutor(mockLogger)
	executor.SetEcho(true)
	executor.SetDryRun(true)

	res, err := executor.Run(context.Background(), domain.Command{
		Name: "cl.exe",
		Args: []string{"/nologo", `C:\Program Files\x.c`},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ReturnCode)
}

func TestExecutor_Run_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := shell.NewExecutor(mocks.NewMockLogger(ctrl))

	res, err := executor.Run(context.Background(), domain.Command{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ReturnCode)
}
