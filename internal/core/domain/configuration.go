package domain

import (
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// BuildType selects between debug and optimized builds.
type BuildType string

const (
	// BuildDebug disables optimizations and emits full debug info.
	BuildDebug BuildType = "Debug"
	// BuildRelease optimizes for speed without debug info.
	BuildRelease BuildType = "Release"
)

// ParseBuildType converts a case-insensitive string into a BuildType.
func ParseBuildType(s string) (BuildType, error) {
	switch strings.ToLower(s) {
	case "debug":
		return BuildDebug, nil
	case "release":
		return BuildRelease, nil
	default:
		return "", zerr.With(ErrUnknownBuildType, "build_type", s)
	}
}

// Architecture is the target CPU architecture.
type Architecture string

const (
	// ArchX86_64 is 64-bit x86.
	ArchX86_64 Architecture = "x86_64"
	// ArchX86 is 32-bit x86.
	ArchX86 Architecture = "x86"
)

// Bitness is the pointer width of an architecture, also used as an output folder name.
type Bitness string

const (
	// Bitness32 is a 32-bit architecture.
	Bitness32 Bitness = "x32"
	// Bitness64 is a 64-bit architecture.
	Bitness64 Bitness = "x64"
)

var archToBitness = map[Architecture]Bitness{
	ArchX86_64: Bitness64,
	ArchX86:    Bitness32,
}

// Bitness returns the bitness of the architecture.
func (a Architecture) Bitness() (Bitness, error) {
	b, ok := archToBitness[a]
	if !ok {
		return "", zerr.With(ErrUnknownArchitecture, "architecture", string(a))
	}
	return b, nil
}

// CompilerID names a registered compiler backend.
type CompilerID string

// CompilerMSVC is the reference MSVC backend.
const CompilerMSVC CompilerID = "msvc"

// Configuration is the resolved configuration of one project build.
type Configuration struct {
	Prefix       string
	BuildFile    string
	Compiler     CompilerID
	BuildType    BuildType
	Architecture Architecture

	// Environment holds captured toolchain variables layered over the process environment.
	Environment map[string]string

	// LocalCache maps object file paths to their last known digest.
	LocalCache map[string]string

	// Reconfigure forces the toolchain environment to be captured again.
	Reconfigure bool
	// Timeout bounds every backend subprocess. Zero means no timeout.
	Timeout time.Duration

	bitness Bitness
}

// NewConfiguration validates the architecture and returns a configuration.
func NewConfiguration(
	prefix, buildFile string,
	compiler CompilerID,
	buildType BuildType,
	arch Architecture,
) (*Configuration, error) {
	bitness, err := arch.Bitness()
	if err != nil {
		return nil, err
	}
	return &Configuration{
		Prefix:       prefix,
		BuildFile:    buildFile,
		Compiler:     compiler,
		BuildType:    buildType,
		Architecture: arch,
		Environment:  make(map[string]string),
		LocalCache:   make(map[string]string),
		bitness:      bitness,
	}, nil
}

// Bitness returns the bitness of the configured architecture.
func (c *Configuration) Bitness() Bitness {
	return c.bitness
}

// OutputFolder returns prefix/bitness/build_type.
func (c *Configuration) OutputFolder() string {
	return filepath.Join(c.Prefix, string(c.bitness), string(c.BuildType))
}

// CachePath returns the location of the persisted object cache.
func (c *Configuration) CachePath() string {
	return filepath.Join(c.OutputFolder(), CacheFileName)
}

// EnvironmentPath returns the location of the captured toolchain environment.
func (c *Configuration) EnvironmentPath() string {
	return filepath.Join(c.OutputFolder(), EnvironmentFileName)
}

// ObjectDir returns the folder holding the object files of a target.
func (c *Configuration) ObjectDir(t *Target) string {
	return filepath.Join(c.OutputFolder(), t.Name.String())
}

// BuildDir returns the build folder of a target delegated to a third-party tool.
func (c *Configuration) BuildDir(t *Target) string {
	return filepath.Join(c.OutputFolder(), t.Name.String())
}

// BuildDirectory returns the directory of the build description.
func (c *Configuration) BuildDirectory() string {
	return filepath.Dir(c.BuildFile)
}
