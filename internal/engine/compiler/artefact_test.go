package compiler_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/engine/compiler"
)

func TestArtefactPath(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "build")
	conf, err := domain.NewConfiguration(prefix, filepath.Join(prefix, "hbuild.yaml"), fakeCompiler, domain.BuildRelease, domain.ArchX86)
	require.NoError(t, err)
	out := filepath.Join(prefix, "x32", "Release")

	newTarget := func(name string, kind domain.TargetKind, external *domain.ExternalBuildProps) *domain.Target {
		tgt, err := domain.NewTarget(name, kind, nil)
		require.NoError(t, err)
		tgt.External = external
		return tgt
	}

	tests := []struct {
		name   string
		target *domain.Target
		want   string
		err    error
	}{
		{
			name:   "executable",
			target: newTarget("app", domain.KindExecutable, nil),
			want:   filepath.Join(out, "app.exe"),
		},
		{
			name:   "dynamic library",
			target: newTarget("core", domain.KindDynamicLibrary, nil),
			want:   filepath.Join(out, "core.dll"),
		},
		{
			name:   "self delegated",
			target: newTarget("zlib", domain.KindStaticLibrary, &domain.ExternalBuildProps{Tool: domain.ToolSelf}),
			want:   filepath.Join(out, "zlib.lib"),
		},
		{
			name:   "cmake delegated",
			target: newTarget("png", domain.KindStaticLibrary, &domain.ExternalBuildProps{Tool: domain.ToolCMake}),
			want:   filepath.Join(out, "png", "Release", "png.lib"),
		},
		{
			name:   "unknown tool",
			target: newTarget("lib", domain.KindStaticLibrary, &domain.ExternalBuildProps{Tool: "meson"}),
			err:    domain.ErrNotImplemented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compiler.ArtefactPath(conf, newFakeBackend(), tt.target)
			if tt.err != nil {
				assert.ErrorContains(t, err, tt.err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
