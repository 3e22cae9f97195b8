package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// TargetKind is the kind of artefact a target produces.
type TargetKind int

const (
	// KindExecutable produces a runnable binary.
	KindExecutable TargetKind = iota + 1
	// KindStaticLibrary produces a static archive.
	KindStaticLibrary
	// KindDynamicLibrary produces a shared library.
	KindDynamicLibrary
)

// String returns the declaration name of the kind.
func (k TargetKind) String() string {
	switch k {
	case KindExecutable:
		return "executable"
	case KindStaticLibrary:
		return "static_library"
	case KindDynamicLibrary:
		return "dynamic_library"
	default:
		return "unknown"
	}
}

// ParseTargetKind converts a declaration string into a TargetKind.
func ParseTargetKind(s string) (TargetKind, error) {
	switch strings.ToLower(s) {
	case "executable", "exe":
		return KindExecutable, nil
	case "static_library", "static", "library", "lib":
		return KindStaticLibrary, nil
	case "dynamic_library", "dynamic", "shared", "dll":
		return KindDynamicLibrary, nil
	default:
		return 0, zerr.With(ErrUnknownTargetKind, "kind", s)
	}
}

// TargetState tracks whether a target was compiled during the current build.
type TargetState int

const (
	// StateNotCompiled is the initial state of every target.
	StateNotCompiled TargetState = iota
	// StateCompiling is held while the target's dependencies and sources are compiled.
	StateCompiling
	// StateCompiled is terminal for the duration of one build.
	StateCompiled
)

// Language is the source language of a file.
type Language string

const (
	// LanguageC is plain C.
	LanguageC Language = "C"
	// LanguageCXX is C++.
	LanguageCXX Language = "CXX"
)

var extToLanguage = map[string]Language{
	".c":   LanguageC,
	".h":   LanguageC,
	".cpp": LanguageCXX,
	".cxx": LanguageCXX,
	".cc":  LanguageCXX,
	".hpp": LanguageCXX,
	".hxx": LanguageCXX,
}

// LanguageFromPath infers the language of a source file from its extension.
func LanguageFromPath(path string) (Language, error) {
	lang, ok := extToLanguage[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", zerr.With(ErrUnknownLanguage, "path", path)
	}
	return lang, nil
}

// SourceFile is one translation unit of a target.
type SourceFile struct {
	Path     string
	Language Language
}

// NewSourceFile creates a SourceFile, inferring its language.
func NewSourceFile(path string) (SourceFile, error) {
	lang, err := LanguageFromPath(path)
	if err != nil {
		return SourceFile{}, err
	}
	return SourceFile{Path: path, Language: lang}, nil
}

// Target is one compilable unit owned by a Package.
type Target struct {
	Name    InternedString
	Kind    TargetKind
	Sources []SourceFile

	// Dir is the directory of the build description that declared the target.
	// Relative sources resolve against it.
	Dir string

	// External is set when the target is built by another build system.
	External *ExternalBuildProps

	public  TargetProperties
	private TargetProperties

	state     TargetState
	effective TargetProperties
}

// NewTarget creates a target, failing if any source has no known language.
func NewTarget(name string, kind TargetKind, sources []string) (*Target, error) {
	files := make([]SourceFile, 0, len(sources))
	for _, src := range sources {
		sf, err := NewSourceFile(src)
		if err != nil {
			return nil, zerr.With(err, "target", name)
		}
		files = append(files, sf)
	}
	return &Target{
		Name:    NewInternedString(name),
		Kind:    kind,
		Sources: files,
	}, nil
}

// Declare adds properties to the given access bucket.
// A declaration without any value is rejected.
func (t *Target) Declare(access Access, props TargetProperties) error {
	if props.IsEmpty() {
		return zerr.With(zerr.With(ErrEmptyDeclaration, "target", t.Name.String()), "access", access.String())
	}
	bucket, err := t.bucket(access)
	if err != nil {
		return err
	}
	*bucket = bucket.Merge(props)
	return nil
}

// Properties returns a copy of the properties declared at the given access level.
func (t *Target) Properties(access Access) TargetProperties {
	if access == AccessPrivate {
		return t.private.Clone()
	}
	return t.public.Clone()
}

// Links returns every link dependency in declaration order, PUBLIC bucket first.
func (t *Target) Links() []*Target {
	links := make([]*Target, 0, len(t.public.Links)+len(t.private.Links))
	links = append(links, t.public.Links...)
	links = append(links, t.private.Links...)
	return links
}

// State returns the compile state of the target.
func (t *Target) State() TargetState {
	return t.state
}

// Effective returns the public properties computed when the target was compiled.
func (t *Target) Effective() TargetProperties {
	return t.effective.Clone()
}

// MarkCompiling transitions the target to compiling.
func (t *Target) MarkCompiling() {
	t.state = StateCompiling
}

// MarkCompiled transitions the target to compiled and remembers its effective public properties.
func (t *Target) MarkCompiled(effective TargetProperties) {
	t.state = StateCompiled
	t.effective = effective.Clone()
}

// Reset returns the target to the not-compiled state.
func (t *Target) Reset() {
	t.state = StateNotCompiled
	t.effective = TargetProperties{}
}

// IsExternal reports whether the target is delegated to another build system.
func (t *Target) IsExternal() bool {
	return t.External != nil
}

func (t *Target) bucket(access Access) (*TargetProperties, error) {
	switch access {
	case AccessPublic:
		return &t.public, nil
	case AccessPrivate:
		return &t.private, nil
	default:
		return nil, zerr.With(ErrUnknownAccess, "access", int(access))
	}
}
