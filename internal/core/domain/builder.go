package domain

import "go.trai.ch/zerr"

// Builder constructs packages and targets for one build set.
// Target names are unique across every package of the builder.
type Builder struct {
	packages []*Package
	current  *Package
	names    map[InternedString]*Target
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{names: make(map[InternedString]*Target)}
}

// Package starts a new package. Targets added afterwards belong to it.
func (b *Builder) Package(name, dir string) *Package {
	pkg := NewPackage(name, dir)
	b.packages = append(b.packages, pkg)
	b.current = pkg
	return pkg
}

// AddTarget registers a target in the current package.
// A "default" package is started if none exists yet.
func (b *Builder) AddTarget(name string, kind TargetKind, sources []string) (*Target, error) {
	if _, exists := b.names[NewInternedString(name)]; exists {
		return nil, zerr.With(ErrTargetAlreadyExists, "target_name", name)
	}

	t, err := NewTarget(name, kind, sources)
	if err != nil {
		return nil, err
	}

	if b.current == nil {
		b.Package("default", "")
	}
	t.Dir = b.current.Dir
	b.current.Targets = append(b.current.Targets, t)
	b.names[t.Name] = t
	return t, nil
}

// AddExecutable registers an executable target.
func (b *Builder) AddExecutable(name string, sources []string) (*Target, error) {
	return b.AddTarget(name, KindExecutable, sources)
}

// AddLibrary registers a static or dynamic library target.
func (b *Builder) AddLibrary(name string, sources []string, dynamic bool) (*Target, error) {
	if dynamic {
		return b.AddTarget(name, KindDynamicLibrary, sources)
	}
	return b.AddTarget(name, KindStaticLibrary, sources)
}

// Lookup returns a registered target by name.
func (b *Builder) Lookup(name string) (*Target, bool) {
	t, ok := b.names[NewInternedString(name)]
	return t, ok
}

// Packages returns every package started on the builder.
func (b *Builder) Packages() []*Package {
	return b.packages
}
