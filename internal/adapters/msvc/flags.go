package msvc

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/hbuild/internal/core/domain"
)

// platformLibraries are linked into every executable and dynamic library.
var platformLibraries = []string{"kernel32.lib", "user32.lib", "gdi32.lib"}

const includeNote = "Note: including file:"

var optimizationFlags = map[domain.OptimizationLevel]string{
	domain.OptDisabled:      "/Od",
	domain.OptMinimizeSize:  "/O1",
	domain.OptMaximizeSpeed: "/O2",
}

var runtimeFlags = map[domain.RuntimeLibrary]string{
	domain.RuntimeStatic:       "/MT",
	domain.RuntimeStaticDebug:  "/MTd",
	domain.RuntimeDynamic:      "/MD",
	domain.RuntimeDynamicDebug: "/MDd",
}

// compileArgs renders the cl.exe arguments compiling sources into one object file.
func compileArgs(req domain.CompileRequest) []string {
	args := []string{"/nologo", "/c"}
	args = append(args, nativePaths(req.Sources)...)
	args = append(args, "/Fo"+nativePath(req.Output))
	args = append(args, preprocessorArgs(req.Includes, req.Macros)...)
	args = append(args, "/std:"+string(req.Options.Standard))
	if flag, ok := optimizationFlags[req.Options.Optimization]; ok {
		args = append(args, flag)
	}
	if flag, ok := runtimeFlags[req.Options.Runtime]; ok {
		args = append(args, flag)
	}
	if req.Options.DebugInfo == domain.DebugInfoFull {
		args = append(args, "/Zi", "/Fd"+nativePath(withExt(req.Output, ".pdb")))
	}
	return args
}

// scanArgs renders the cl.exe arguments that only preprocess a source and list its includes.
func scanArgs(req domain.ScanRequest) []string {
	args := []string{"/nologo", "/Zs", "/showIncludes"}
	args = append(args, preprocessorArgs(req.Includes, req.Macros)...)
	if req.Standard != "" {
		args = append(args, "/std:"+string(req.Standard))
	}
	return append(args, nativePath(req.Source))
}

// linkArgs renders the link.exe arguments of an executable or a dynamic library.
func linkArgs(req domain.LinkRequest) []string {
	args := []string{"/nologo"}
	if req.Kind == domain.OutputDynamicLibrary {
		args = append(args, "/DLL")
	}
	args = append(args, "/OUT:"+nativePath(req.Output))
	if req.Kind == domain.OutputDynamicLibrary {
		args = append(args, "/IMPLIB:"+nativePath(importLibrary(req.Output)))
	}
	args = append(args, nativePaths(req.Objects)...)
	for _, lib := range req.Libraries {
		args = append(args, nativePath(importLibrary(lib)))
	}
	args = append(args, platformLibraries...)
	if req.DebugInfo == domain.DebugInfoFull {
		args = append(args, "/DEBUG:FULL")
	}
	if req.DebugInfoPath != "" && (req.DebugInfo == domain.DebugInfoFull || req.Kind == domain.OutputDynamicLibrary) {
		args = append(args, "/PDB:"+nativePath(req.DebugInfoPath))
	}
	return args
}

// importLibrary maps a .dll to the sibling .lib that link.exe consumes.
// Other paths are returned unchanged.
func importLibrary(path string) string {
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".dll") {
		return path
	}
	return strings.TrimSuffix(path, ext) + ".lib"
}

// archiveArgs renders the lib.exe arguments of a static library.
func archiveArgs(req domain.LinkRequest) []string {
	args := []string{"/nologo", "/OUT:" + nativePath(req.Output)}
	return append(args, nativePaths(req.Objects)...)
}

// preprocessorArgs renders include directories in search order and macros sorted by name.
func preprocessorArgs(includes []string, macros map[string]string) []string {
	args := make([]string, 0, len(includes)+len(macros))
	for _, inc := range includes {
		args = append(args, "/I"+nativePath(inc))
	}
	for _, name := range slices.Sorted(maps.Keys(macros)) {
		if v := macros[name]; v != "" {
			args = append(args, "/D"+name+"="+v)
		} else {
			args = append(args, "/D"+name)
		}
	}
	return args
}

// parseIncludes extracts the /showIncludes notes in report order.
// A header included along several paths is reported once, at its first position.
func parseIncludes(output string) []string {
	var headers []string
	seen := make(map[string]struct{})
	for line := range strings.Lines(output) {
		_, rest, ok := strings.Cut(line, includeNote)
		if !ok {
			continue
		}
		path := strings.TrimSpace(rest)
		if path == "" {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		headers = append(headers, path)
	}
	return headers
}

// withExt replaces the extension of path.
func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func nativePath(p string) string {
	return filepath.FromSlash(p)
}

func nativePaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = nativePath(p)
	}
	return out
}
