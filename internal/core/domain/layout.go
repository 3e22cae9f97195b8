package domain

const (
	// CacheFileName is the name of the object cache inside an output folder.
	CacheFileName = "hbuild.cache"
	// EnvironmentFileName is the name of the captured toolchain environment inside an output folder.
	EnvironmentFileName = "toolchain.env"
	// DefaultBuildFile is the description file looked up when none is given.
	DefaultBuildFile = "hbuild.yaml"
	// DefaultPrefix is the output prefix used when none is given.
	DefaultPrefix = "build"
)

// BuildFileCandidates are probed in order when a directory is given instead of a file.
var BuildFileCandidates = []string{"hbuild.yaml", "hbuild.yml", "hbuild.hcl"}
