package domain

// OptimizationLevel is the numeric optimization code folded into cache digests.
type OptimizationLevel int

const (
	// OptDisabled turns optimizations off.
	OptDisabled OptimizationLevel = 0
	// OptMinimizeSize favours small code.
	OptMinimizeSize OptimizationLevel = 1
	// OptMaximizeSpeed favours fast code.
	OptMaximizeSpeed OptimizationLevel = 2
)

// LanguageStandard is the language standard token passed to the compiler.
type LanguageStandard string

const (
	// StdCLatest is the newest C standard the compiler supports.
	StdCLatest LanguageStandard = "clatest"
	// StdCXX14 is ISO C++14.
	StdCXX14 LanguageStandard = "c++14"
)

// RuntimeLibrary is the C runtime linkage.
type RuntimeLibrary int

const (
	// RuntimeStatic links the release runtime statically.
	RuntimeStatic RuntimeLibrary = iota + 1
	// RuntimeStaticDebug links the debug runtime statically.
	RuntimeStaticDebug
	// RuntimeDynamic links the release runtime dynamically.
	RuntimeDynamic
	// RuntimeDynamicDebug links the debug runtime dynamically.
	RuntimeDynamicDebug
)

// DebugInfoMode controls debug information output.
type DebugInfoMode int

const (
	// DebugInfoNone emits no debug information.
	DebugInfoNone DebugInfoMode = iota
	// DebugInfoFull emits full debug information.
	DebugInfoFull
)

// CompileOptions are the per-source options derived from the build type and language.
type CompileOptions struct {
	Optimization OptimizationLevel
	Standard     LanguageStandard
	Runtime      RuntimeLibrary
	DebugInfo    DebugInfoMode
}

// DeriveCompileOptions resolves the options for a source of the given language.
func DeriveCompileOptions(bt BuildType, lang Language) CompileOptions {
	opts := CompileOptions{Standard: StandardFor(lang)}
	if bt == BuildDebug {
		opts.Optimization = OptDisabled
		opts.Runtime = RuntimeStaticDebug
		opts.DebugInfo = DebugInfoFull
		return opts
	}
	opts.Optimization = OptMaximizeSpeed
	opts.Runtime = RuntimeStatic
	opts.DebugInfo = DebugInfoNone
	return opts
}

// StandardFor returns the language standard used for a language.
func StandardFor(lang Language) LanguageStandard {
	if lang == LanguageC {
		return StdCLatest
	}
	return StdCXX14
}
