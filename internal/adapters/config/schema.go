package config

// Description is the decoded form of a build description.
// The same structure is filled from YAML and HCL files.
type Description struct {
	Version  string       `yaml:"version" hcl:"version,optional"`
	Packages []PackageDTO `yaml:"packages" hcl:"package,block"`
	// Targets outside any package belong to a package named after the description directory.
	Targets []TargetDTO `yaml:"targets" hcl:"target,block"`
}

// PackageDTO represents a package definition.
type PackageDTO struct {
	Name    string      `yaml:"name" hcl:"name,label"`
	Targets []TargetDTO `yaml:"targets" hcl:"target,block"`
}

// TargetDTO represents a target definition.
type TargetDTO struct {
	Name     string         `yaml:"name" hcl:"name,label"`
	Kind     string         `yaml:"kind" hcl:"kind"`
	Sources  []string       `yaml:"sources" hcl:"sources,optional"`
	Public   *PropertiesDTO `yaml:"public" hcl:"public,block"`
	Private  *PropertiesDTO `yaml:"private" hcl:"private,block"`
	External *ExternalDTO   `yaml:"external" hcl:"external,block"`
}

// PropertiesDTO represents one access bucket of a target.
type PropertiesDTO struct {
	Includes []string          `yaml:"includes" hcl:"includes,optional"`
	Macros   map[string]string `yaml:"macros" hcl:"macros,optional"`
	Links    []string          `yaml:"links" hcl:"links,optional"`
}

// ExternalDTO represents the external build of a target.
type ExternalDTO struct {
	Tool      string            `yaml:"tool" hcl:"tool"`
	Location  string            `yaml:"location" hcl:"location"`
	BuildFile string            `yaml:"build_file" hcl:"build_file,optional"`
	Variables map[string]string `yaml:"variables" hcl:"variables,optional"`
}
