package domain

// TargetStatus is the outcome of one target in a build.
type TargetStatus string

const (
	// StatusCompiled means at least one source was compiled or the target was relinked.
	StatusCompiled TargetStatus = "compiled"
	// StatusUpToDate means every source was a cache hit.
	StatusUpToDate TargetStatus = "up-to-date"
	// StatusDelegated means the target was built by an external build system.
	StatusDelegated TargetStatus = "delegated"
	// StatusFailed means the target aborted the build.
	StatusFailed TargetStatus = "failed"
)

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
