package ports

import (
	"context"

	"go.trai.ch/hbuild/internal/core/domain"
)

// Backend is a concrete compiler and linker driver.
//
// Every backend owns its artefact naming convention. The orchestrator never
// builds a compiler command line itself.
//
//go:generate go run go.uber.org/mock/mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks
type Backend interface {
	// ID returns the compiler id the backend is registered under.
	ID() domain.CompilerID

	// Available reports whether the toolchain can be used on this host.
	Available(ctx context.Context) bool

	// ArtefactExtension returns the file extension of a target kind's artefact.
	// Kinds the backend cannot produce fail with domain.ErrNotImplemented.
	ArtefactExtension(kind domain.TargetKind) (string, error)

	// ObjectExtension returns the file extension of object files.
	ObjectExtension() string

	// Environment harvests the toolchain variables for the given configuration.
	Environment(ctx context.Context, conf *domain.Configuration) (map[string]string, error)

	// Compile compiles sources into a single output.
	Compile(ctx context.Context, req domain.CompileRequest) (domain.ProcessResult, error)

	// Link links object files into an artefact of req.Kind.
	Link(ctx context.Context, req domain.LinkRequest) (domain.ProcessResult, error)

	// ScanHeaders returns the headers the source transitively includes, in the
	// order the toolchain reports them.
	ScanHeaders(ctx context.Context, req domain.ScanRequest) ([]string, error)
}

// BackendRegistry resolves a backend by compiler id.
type BackendRegistry interface {
	// Lookup returns the backend registered under id.
	Lookup(id domain.CompilerID) (Backend, error)
	// Detect returns the first registered backend that is available.
	Detect(ctx context.Context) (Backend, error)
}
