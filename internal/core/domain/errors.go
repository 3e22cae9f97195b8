package domain

import "go.trai.ch/zerr"

var (
	// ErrTargetAlreadyExists is returned when a target name is declared twice in the same build set.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrUnknownLanguage is returned when a source file extension maps to no known language.
	ErrUnknownLanguage = zerr.New("unknown source language")

	// ErrUnknownTargetKind is returned when a target kind string cannot be parsed.
	ErrUnknownTargetKind = zerr.New("unknown target kind")

	// ErrEmptyDeclaration is returned when a property declaration carries no values.
	ErrEmptyDeclaration = zerr.New("property declaration carries no values")

	// ErrUnknownAccess is returned when an access level is neither PUBLIC nor PRIVATE.
	ErrUnknownAccess = zerr.New("unknown access level")

	// ErrMissingDependency is returned when a target links a target that is not part of the build set.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the link graph or the chain of nested descriptions contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTargetNotFound is returned when a requested target is not part of any package.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrNoPackages is returned when a build description yields zero packages.
	ErrNoPackages = zerr.New("build description produced no packages")

	// ErrUnknownCompiler is returned when no backend is registered for the requested compiler id.
	ErrUnknownCompiler = zerr.New("unknown compiler")

	// ErrNoCompilerDetected is returned when no registered backend reports itself as available.
	ErrNoCompilerDetected = zerr.New("no compiler detected")

	// ErrUnknownBuildType is returned when a build type string cannot be parsed.
	ErrUnknownBuildType = zerr.New("unknown build type")

	// ErrUnknownArchitecture is returned when an architecture has no known bitness.
	ErrUnknownArchitecture = zerr.New("unknown architecture")

	// ErrNotImplemented is returned for compiler, tool and kind combinations no backend owns.
	ErrNotImplemented = zerr.New("not implemented")

	// ErrMissingSources is the sentinel wrapped by MissingSourcesError.
	ErrMissingSources = zerr.New("non-existing sources found")

	// ErrObjectCollision is returned when two sources of one target map to the same object file.
	ErrObjectCollision = zerr.New("sources map to the same object file")

	// ErrCompileFailed is the sentinel wrapped by BackendError for compile steps.
	ErrCompileFailed = zerr.New("failed to compile")

	// ErrLinkFailed is the sentinel wrapped by BackendError for link steps.
	ErrLinkFailed = zerr.New("failed to link")

	// ErrHeaderScanFailed is returned when the backend header scan fails.
	ErrHeaderScanFailed = zerr.New("failed to scan headers")

	// ErrArtefactMissing is returned when a step reported success but produced no artefact.
	ErrArtefactMissing = zerr.New("artefact missing after successful build step")

	// ErrUnsupportedTool is returned when an external build tool has no registered delegate.
	ErrUnsupportedTool = zerr.New("unsupported external build tool")

	// ErrToolNotFound is returned when an external tool executable cannot be located.
	ErrToolNotFound = zerr.New("external tool executable not found")

	// ErrDelegateFailed is returned when an external build step exits with a non-zero code.
	ErrDelegateFailed = zerr.New("external build failed")

	// ErrCommandTimeout is returned when a subprocess exceeds its timeout.
	ErrCommandTimeout = zerr.New("command timed out")

	// ErrCommandStartFailed is returned when a subprocess cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrCacheReadFailed is returned when the cache file cannot be read or decoded.
	ErrCacheReadFailed = zerr.New("failed to read object cache")

	// ErrCacheWriteFailed is returned when the cache file cannot be encoded or written.
	ErrCacheWriteFailed = zerr.New("failed to write object cache")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrConfigReadFailed is returned when the build description cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read build description")

	// ErrConfigParseFailed is returned when the build description cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse build description")

	// ErrUnsupportedDescription is returned for build description formats without a loader.
	ErrUnsupportedDescription = zerr.New("unsupported build description format")

	// ErrOutputCreateFailed is returned when an output directory cannot be created.
	ErrOutputCreateFailed = zerr.New("failed to create output directory")

	// ErrEnvironmentCaptureFailed is returned when the toolchain environment cannot be harvested.
	ErrEnvironmentCaptureFailed = zerr.New("failed to capture toolchain environment")
)
