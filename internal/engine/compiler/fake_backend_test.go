package compiler_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
)

const fakeCompiler domain.CompilerID = "fake"

var includeDirective = regexp.MustCompile(`(?m)^\s*#include\s+"([^"]+)"`)

var _ ports.Backend = (*fakeBackend)(nil)

// fakeBackend compiles by wrapping source bytes and links by concatenating
// object and library bytes, so artefacts change exactly when their inputs do.
type fakeBackend struct {
	compiles []domain.CompileRequest
	links    []domain.LinkRequest

	failCompile map[string]int
	failLink    map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		failCompile: make(map[string]int),
		failLink:    make(map[string]int),
	}
}

func (b *fakeBackend) ID() domain.CompilerID { return fakeCompiler }

func (b *fakeBackend) Available(context.Context) bool { return true }

func (b *fakeBackend) ArtefactExtension(kind domain.TargetKind) (string, error) {
	switch kind {
	case domain.KindExecutable:
		return ".exe", nil
	case domain.KindStaticLibrary:
		return ".lib", nil
	case domain.KindDynamicLibrary:
		return ".dll", nil
	default:
		return "", domain.ErrNotImplemented
	}
}

func (b *fakeBackend) ObjectExtension() string { return ".o" }

func (b *fakeBackend) Environment(context.Context, *domain.Configuration) (map[string]string, error) {
	return map[string]string{"FAKE_TOOLCHAIN": "1"}, nil
}

func (b *fakeBackend) Compile(_ context.Context, req domain.CompileRequest) (domain.ProcessResult, error) {
	b.compiles = append(b.compiles, req)
	if code, ok := b.failCompile[filepath.Base(req.Sources[0])]; ok {
		return domain.ProcessResult{ReturnCode: code, Output: "error C2143: syntax error"}, nil
	}

	var out strings.Builder
	for _, src := range req.Sources {
		data, err := os.ReadFile(src)
		if err != nil {
			return domain.ProcessResult{ReturnCode: 1, Output: err.Error()}, nil
		}
		out.WriteString("obj(")
		out.Write(data)
		out.WriteString(")")
	}
	if err := os.WriteFile(req.Output, []byte(out.String()), 0o600); err != nil {
		return domain.ProcessResult{}, err
	}
	return domain.ProcessResult{}, nil
}

func (b *fakeBackend) Link(_ context.Context, req domain.LinkRequest) (domain.ProcessResult, error) {
	b.links = append(b.links, req)
	if code, ok := b.failLink[filepath.Base(req.Output)]; ok {
		return domain.ProcessResult{ReturnCode: code, Output: "error LNK2019: unresolved external symbol"}, nil
	}

	var out strings.Builder
	for _, in := range append(append([]string{}, req.Objects...), req.Libraries...) {
		data, err := os.ReadFile(in)
		if err != nil {
			return domain.ProcessResult{ReturnCode: 1181, Output: err.Error()}, nil
		}
		out.Write(data)
	}
	if err := os.WriteFile(req.Output, []byte(out.String()), 0o600); err != nil {
		return domain.ProcessResult{}, err
	}
	return domain.ProcessResult{}, nil
}

// ScanHeaders follows #include "..." directives depth first, looking next to
// the including file and then in the include directories.
func (b *fakeBackend) ScanHeaders(_ context.Context, req domain.ScanRequest) ([]string, error) {
	var headers []string
	seen := make(map[string]struct{})

	var visit func(file string) error
	visit = func(file string) error {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		for _, m := range includeDirective.FindAllStringSubmatch(string(data), -1) {
			path := resolveHeader(m[1], filepath.Dir(file), req.Includes)
			if path == "" {
				continue
			}
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			headers = append(headers, path)
			if err := visit(path); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(req.Source); err != nil {
		return nil, err
	}
	return headers, nil
}

func resolveHeader(name, dir string, includes []string) string {
	for _, d := range append([]string{dir}, includes...) {
		candidate := filepath.Join(d, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func (b *fakeBackend) compiledSources() []string {
	names := make([]string, 0, len(b.compiles))
	for _, req := range b.compiles {
		names = append(names, filepath.Base(req.Sources[0]))
	}
	return names
}

func (b *fakeBackend) linkOf(output string) (domain.LinkRequest, bool) {
	for i := len(b.links) - 1; i >= 0; i-- {
		if filepath.Base(b.links[i].Output) == output {
			return b.links[i], true
		}
	}
	return domain.LinkRequest{}, false
}

func (b *fakeBackend) compileOf(source string) (domain.CompileRequest, bool) {
	for i := len(b.compiles) - 1; i >= 0; i-- {
		if filepath.Base(b.compiles[i].Sources[0]) == source {
			return b.compiles[i], true
		}
	}
	return domain.CompileRequest{}, false
}

func (b *fakeBackend) reset() {
	b.compiles = nil
	b.links = nil
}
