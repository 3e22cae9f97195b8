// Package msvc implements the reference compiler backend driving cl.exe, link.exe and lib.exe.
package msvc

import (
	"context"
	"runtime"

	"go.trai.ch/hbuild/internal/adapters/shell"
	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Backend = (*Backend)(nil)

var artefactExtensions = map[domain.TargetKind]string{
	domain.KindExecutable:     ".exe",
	domain.KindStaticLibrary:  ".lib",
	domain.KindDynamicLibrary: ".dll",
}

// Backend drives the MSVC command line tools through an executor.
type Backend struct {
	executor ports.Executor
	probe    *EnvironmentProbe
	goos     string
}

// NewBackend creates a new MSVC backend.
func NewBackend(executor ports.Executor, probe *EnvironmentProbe) *Backend {
	return &Backend{
		executor: executor,
		probe:    probe,
		goos:     runtime.GOOS,
	}
}

// ID returns domain.CompilerMSVC.
func (b *Backend) ID() domain.CompilerID {
	return domain.CompilerMSVC
}

// Available reports whether cl.exe can be found, either on the inherited PATH
// or through a vcvarsall.bat bootstrap script.
func (b *Backend) Available(_ context.Context) bool {
	if b.goos != "windows" {
		return false
	}
	if _, err := shell.LookPath("cl", nil); err == nil {
		return true
	}
	return b.probe.FindScript() != ""
}

// ArtefactExtension returns .exe, .lib or .dll.
func (b *Backend) ArtefactExtension(kind domain.TargetKind) (string, error) {
	ext, ok := artefactExtensions[kind]
	if !ok {
		return "", zerr.With(zerr.With(domain.ErrNotImplemented, "compiler", string(domain.CompilerMSVC)), "kind", kind.String())
	}
	return ext, nil
}

// ObjectExtension returns .obj.
func (b *Backend) ObjectExtension() string {
	return ".obj"
}

// Environment captures the vcvarsall.bat variables for conf.
func (b *Backend) Environment(ctx context.Context, conf *domain.Configuration) (map[string]string, error) {
	return b.probe.Capture(ctx, conf)
}

// Compile runs cl.exe on the request sources.
func (b *Backend) Compile(ctx context.Context, req domain.CompileRequest) (domain.ProcessResult, error) {
	return b.executor.Run(ctx, domain.Command{
		Name:    "cl",
		Args:    compileArgs(req),
		Dir:     req.Dir,
		Env:     req.Env,
		Timeout: req.Timeout,
	})
}

// Link runs lib.exe for static libraries and link.exe otherwise.
func (b *Backend) Link(ctx context.Context, req domain.LinkRequest) (domain.ProcessResult, error) {
	cmd := domain.Command{Dir: req.Dir, Env: req.Env, Timeout: req.Timeout}
	switch req.Kind {
	case domain.OutputStaticLibrary:
		cmd.Name, cmd.Args = "lib", archiveArgs(req)
	case domain.OutputExecutable, domain.OutputDynamicLibrary:
		cmd.Name, cmd.Args = "link", linkArgs(req)
	default:
		return domain.ProcessResult{}, zerr.With(zerr.With(domain.ErrNotImplemented, "compiler", string(domain.CompilerMSVC)), "output_kind", int(req.Kind))
	}
	return b.executor.Run(ctx, cmd)
}

// ScanHeaders preprocesses the source with /showIncludes and returns the
// reported headers in report order.
func (b *Backend) ScanHeaders(ctx context.Context, req domain.ScanRequest) ([]string, error) {
	res, err := b.executor.Run(ctx, domain.Command{
		Name:    "cl",
		Args:    scanArgs(req),
		Dir:     req.Dir,
		Env:     req.Env,
		Timeout: req.Timeout,
	})
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrHeaderScanFailed, res.Output), "path", req.Source),
			"return_code", res.ReturnCode,
		)
	}
	return parseIncludes(res.Output), nil
}
