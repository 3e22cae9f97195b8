package domain

import "time"

// Command is one subprocess invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env is layered over the inherited process environment.
	Env map[string]string
	// Timeout of zero means no timeout.
	Timeout time.Duration
}

// ProcessResult is the outcome of a subprocess that ran to completion.
type ProcessResult struct {
	ReturnCode int
	Output     string
}

// Success reports whether the process exited with code zero.
func (r ProcessResult) Success() bool {
	return r.ReturnCode == 0
}

// OutputKind is the kind of file a backend step writes.
type OutputKind int

const (
	// OutputObject is a single object file.
	OutputObject OutputKind = iota + 1
	// OutputExecutable is a linked executable.
	OutputExecutable
	// OutputStaticLibrary is a static archive.
	OutputStaticLibrary
	// OutputDynamicLibrary is a shared library.
	OutputDynamicLibrary
)

// OutputKindFor maps a target kind to the link output kind.
func OutputKindFor(k TargetKind) OutputKind {
	switch k {
	case KindStaticLibrary:
		return OutputStaticLibrary
	case KindDynamicLibrary:
		return OutputDynamicLibrary
	default:
		return OutputExecutable
	}
}

// CompileRequest asks a backend to compile sources into one output.
type CompileRequest struct {
	Sources  []string
	Output   string
	Kind     OutputKind
	Includes []string
	Macros   map[string]string
	Options  CompileOptions
	Env      map[string]string
	Dir      string
	Timeout  time.Duration
}

// LinkRequest asks a backend to link object files into an artefact.
type LinkRequest struct {
	Objects   []string
	Output    string
	Kind      OutputKind
	Libraries []string
	// DebugInfoPath is where sibling debug info is written, if any.
	DebugInfoPath string
	DebugInfo     DebugInfoMode
	Env           map[string]string
	Dir           string
	Timeout       time.Duration
}

// ScanRequest asks a backend for the headers a source transitively includes.
type ScanRequest struct {
	Source   string
	Includes []string
	Macros   map[string]string
	Standard LanguageStandard
	Env      map[string]string
	Dir      string
	Timeout  time.Duration
}
