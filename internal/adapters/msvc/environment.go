package msvc

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// ScriptEnvVar overrides the location of vcvarsall.bat.
const ScriptEnvVar = "HBUILD_VCVARS"

// DefaultScripts are probed in order when ScriptEnvVar is unset.
var DefaultScripts = []string{
	`C:\Program Files\Microsoft Visual Studio\2022\Community\VC\Auxiliary\Build\vcvarsall.bat`,
	`C:\Program Files (x86)\Microsoft Visual Studio\2019\Preview\VC\Auxiliary\Build\vcvarsall.bat`,
}

// HarvestedVariables are the toolchain variables kept from the bootstrap script.
var HarvestedVariables = []string{"INCLUDE", "LIB", "LIBPATH", "PATH"}

var vcvarsArch = map[domain.Bitness]string{
	domain.Bitness64: "x64",
	domain.Bitness32: "x86",
}

// EnvironmentProbe captures the MSVC toolchain environment from vcvarsall.bat.
// The captured variables are persisted next to the build outputs and reused
// until a reconfigure is requested.
type EnvironmentProbe struct {
	executor ports.Executor
	logger   ports.Logger

	scripts []string
	getenv  func(string) string
}

// NewEnvironmentProbe creates a probe looking at the default script locations.
func NewEnvironmentProbe(executor ports.Executor, logger ports.Logger) *EnvironmentProbe {
	return &EnvironmentProbe{
		executor: executor,
		logger:   logger,
		scripts:  DefaultScripts,
		getenv:   os.Getenv,
	}
}

// WithScripts replaces the probed script locations.
func (p *EnvironmentProbe) WithScripts(scripts ...string) *EnvironmentProbe {
	p.scripts = scripts
	return p
}

// FindScript returns the first existing bootstrap script, or "" if there is none.
func (p *EnvironmentProbe) FindScript() string {
	if override := p.getenv(ScriptEnvVar); override != "" {
		if fileExists(override) {
			return override
		}
		p.logger.Warn("vcvarsall override does not exist", "path", override)
	}
	for _, script := range p.scripts {
		if fileExists(script) {
			return script
		}
	}
	return ""
}

// Capture returns the toolchain variables for conf.
// No bootstrap script yields an empty environment, not an error.
func (p *EnvironmentProbe) Capture(ctx context.Context, conf *domain.Configuration) (map[string]string, error) {
	path := conf.EnvironmentPath()
	if !conf.Reconfigure {
		env, err := godotenv.Read(path)
		if err == nil {
			p.logger.Debug("reusing toolchain environment", "path", path)
			return env, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("ignoring unreadable toolchain environment", "path", path, "error", err.Error())
		}
	}

	script := p.FindScript()
	if script == "" {
		p.logger.Debug("no vcvarsall script found, using inherited environment")
		return map[string]string{}, nil
	}

	arch, ok := vcvarsArch[conf.Bitness()]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownArchitecture, "architecture", string(conf.Architecture))
	}

	p.logger.Info("capturing toolchain environment", "script", script, "arch", arch)
	res, err := p.executor.Run(ctx, domain.Command{
		Name:    "cmd",
		Args:    []string{"/d", "/s", "/c", `"` + script + `" ` + arch + " && set"},
		Timeout: conf.Timeout,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrEnvironmentCaptureFailed, err.Error()), "script", script)
	}
	if !res.Success() {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrEnvironmentCaptureFailed, "bootstrap script failed"), "script", script),
			"return_code", res.ReturnCode,
		)
	}

	env := parseSet(res.Output)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrOutputCreateFailed, err.Error()), "path", filepath.Dir(path))
	}
	if err := godotenv.Write(env, path); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrEnvironmentCaptureFailed, err.Error()), "path", path)
	}
	return env, nil
}

// parseSet keeps the harvested variables from the output of `set`.
// Names are upper-cased since cmd reports PATH as Path.
func parseSet(output string) map[string]string {
	env := make(map[string]string, len(HarvestedVariables))
	for line := range strings.Lines(output) {
		name, value, ok := strings.Cut(strings.TrimRight(line, "\r\n"), "=")
		if !ok {
			continue
		}
		name = strings.ToUpper(name)
		if slices.Contains(HarvestedVariables, name) {
			env[name] = value
		}
	}
	return env
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
