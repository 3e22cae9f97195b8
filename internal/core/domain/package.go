package domain

// Package is a named group of targets produced by one build description.
type Package struct {
	Name string
	// Dir is the directory of the build description.
	Dir     string
	Targets []*Target
}

// NewPackage creates an empty package.
func NewPackage(name, dir string) *Package {
	return &Package{Name: name, Dir: dir}
}

// Lookup returns the target with the given name.
func (p *Package) Lookup(name string) (*Target, bool) {
	for _, t := range p.Targets {
		if t.Name.String() == name {
			return t, true
		}
	}
	return nil, false
}
