package toolchain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports/mocks"
	"go.trai.ch/hbuild/internal/engine/toolchain"
)

func newBackend(ctrl *gomock.Controller, id domain.CompilerID, available bool) *mocks.MockBackend {
	b := mocks.NewMockBackend(ctrl)
	b.EXPECT().ID().Return(id).AnyTimes()
	b.EXPECT().Available(gomock.Any()).Return(available).AnyTimes()
	return b
}

func TestRegistry_Lookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	msvc := newBackend(ctrl, domain.CompilerMSVC, false)
	r := toolchain.NewRegistry(msvc)

	got, err := r.Lookup(domain.CompilerMSVC)
	require.NoError(t, err)
	assert.Same(t, msvc, got)

	_, err = r.Lookup("gcc")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownCompiler.Error())
}

func TestRegistry_DetectFirstAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	msvc := newBackend(ctrl, domain.CompilerMSVC, false)
	clang := newBackend(ctrl, "clang", true)
	gcc := newBackend(ctrl, "gcc", true)

	r := toolchain.NewRegistry(msvc, clang)
	r.Register(gcc)

	got, err := r.Detect(context.Background())
	require.NoError(t, err)
	assert.Same(t, clang, got)
}

func TestRegistry_DetectNone(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := toolchain.NewRegistry(newBackend(ctrl, domain.CompilerMSVC, false))

	_, err := r.Detect(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrNoCompilerDetected.Error())
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := newBackend(ctrl, domain.CompilerMSVC, false)
	second := newBackend(ctrl, domain.CompilerMSVC, true)

	r := toolchain.NewRegistry(first, second)
	got, err := r.Lookup(domain.CompilerMSVC)
	require.NoError(t, err)
	assert.Same(t, second, got)

	detected, err := r.Detect(context.Background())
	require.NoError(t, err)
	assert.Same(t, second, detected)
}
