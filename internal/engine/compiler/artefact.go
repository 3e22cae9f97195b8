package compiler

import (
	"path/filepath"
	"strings"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// ArtefactPath returns where the artefact of t is written.
//
// Native and self-delegated targets sit directly in the output folder.
// CMake targets sit in their build folder, under the configuration
// subfolder used by multi-config generators.
func ArtefactPath(conf *domain.Configuration, backend ports.Backend, t *domain.Target) (string, error) {
	ext, err := backend.ArtefactExtension(t.Kind)
	if err != nil {
		return "", zerr.With(err, "target", t.Name.String())
	}
	name := t.Name.String() + ext

	if !t.IsExternal() || t.External.Tool == domain.ToolSelf {
		return filepath.Join(conf.OutputFolder(), name), nil
	}
	if t.External.Tool == domain.ToolCMake {
		return filepath.Join(conf.BuildDir(t), string(conf.BuildType), name), nil
	}
	return "", zerr.With(zerr.With(domain.ErrNotImplemented, "tool", string(t.External.Tool)), "compiler", string(backend.ID()))
}

// objectPath returns the object file of a source inside the target's object folder.
// Sources below the target's directory keep their relative folder; others use their base name.
func objectPath(conf *domain.Configuration, backend ports.Backend, t *domain.Target, source string) string {
	name := filepath.Base(source)
	if dir, err := filepath.Abs(t.Dir); err == nil && t.Dir != "" {
		if rel, err := filepath.Rel(dir, source); err == nil && filepath.IsLocal(rel) {
			name = rel
		}
	}
	return filepath.Join(conf.ObjectDir(t), strings.TrimSuffix(name, filepath.Ext(name))+backend.ObjectExtension())
}

// debugInfoPath returns the sibling debug info file of an artefact.
func debugInfoPath(artefact string) string {
	return strings.TrimSuffix(artefact, filepath.Ext(artefact)) + ".pdb"
}

// absolutePaths resolves relative paths against dir, keeping order.
func absolutePaths(paths []string, dir string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = absolutePath(p, dir)
	}
	return out
}

func absolutePath(p, dir string) string {
	if filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}
