// Package shell provides the subprocess executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const waitDelay = time.Second

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger

	mu     sync.RWMutex
	echo   bool
	dryRun bool
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// SetEcho logs every command line before it runs.
func (e *Executor) SetEcho(echo bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.echo = echo
}

// SetDryRun skips execution and reports success for every command.
func (e *Executor) SetDryRun(dryRun bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dryRun = dryRun
}

// Run executes the command with cmd.Env layered over the process environment.
// Toolchain PATH entries are prepended to the inherited PATH.
func (e *Executor) Run(ctx context.Context, c domain.Command) (domain.ProcessResult, error) {
	if c.Name == "" {
		return domain.ProcessResult{}, nil
	}

	e.mu.RLock()
	echo, dryRun := e.echo, e.dryRun
	e.mu.RUnlock()

	if echo {
		e.logger.Info("exec", "command", CommandLine(c.Name, c.Args))
	}
	if dryRun {
		return domain.ProcessResult{}, nil
	}

	cmdEnv := resolveEnvironment(os.Environ(), c.Env)

	// Resolve the executable against the layered PATH, not the process PATH.
	executable := c.Name
	if !filepath.IsAbs(c.Name) {
		if lp, err := lookPath(c.Name, cmdEnv); err == nil {
			executable = lp
		}
	}

	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, executable, c.Args...) //nolint:gosec // toolchain command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = c.Name
	}
	cmd.Dir = c.Dir
	cmd.Env = cmdEnv
	// Children that inherited the output pipe must not keep Run blocked after a kill.
	cmd.WaitDelay = waitDelay

	var captured bytes.Buffer
	lw := &logWriter{logger: e.logger}
	if v, ok := ports.VertexFromContext(ctx); ok {
		lw.vertex = v
	}
	out := &teeWriter{buf: &captured, lines: lw}
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	lw.Flush()

	if c.Timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return domain.ProcessResult{ReturnCode: -1, Output: captured.String()},
			zerr.With(zerr.With(zerr.Wrap(domain.ErrCommandTimeout, "subprocess aborted"), "command", c.Name), "timeout", c.Timeout.String())
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return domain.ProcessResult{ReturnCode: exitErr.ExitCode(), Output: captured.String()}, nil
		}
		return domain.ProcessResult{ReturnCode: -1, Output: captured.String()},
			zerr.With(errors.Join(domain.ErrCommandStartFailed, err), "command", c.Name)
	}

	return domain.ProcessResult{ReturnCode: 0, Output: captured.String()}, nil
}

// CommandLine renders a command for display, quoting arguments with spaces.
func CommandLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{name}, args...) {
		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

type teeWriter struct {
	mu    sync.Mutex
	buf   *bytes.Buffer
	lines *logWriter
}

func (w *teeWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(p)
	return w.lines.Write(p)
}

// logWriter forwards complete lines to the logger and the current vertex.
type logWriter struct {
	logger  ports.Logger
	vertex  ports.Vertex
	partial []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.partial = append(w.partial, p...)
	for {
		idx := bytes.IndexByte(w.partial, '\n')
		if idx < 0 {
			break
		}
		w.emit(string(w.partial[:idx]))
		w.partial = w.partial[idx+1:]
	}
	return len(p), nil
}

// Flush emits a trailing line without newline.
func (w *logWriter) Flush() {
	if len(w.partial) > 0 {
		w.emit(string(w.partial))
		w.partial = nil
	}
}

func (w *logWriter) emit(line string) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return
	}
	w.logger.Debug(line)
	if w.vertex != nil {
		_, _ = w.vertex.Stdout().Write([]byte(line + "\n"))
	}
}

// resolveEnvironment layers the toolchain environment over the system environment.
func resolveEnvironment(sysEnv []string, overlay map[string]string) []string {
	envMap := make(map[string]string)
	names := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok && k != "" {
			envMap[envKey(k)] = v
			names[envKey(k)] = k
		}
	}

	for k, v := range overlay {
		key := envKey(k)
		if key == envKey("PATH") {
			if sysPath, exists := envMap[key]; exists && sysPath != "" && v != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[key] = v
		if _, known := names[key]; !known {
			names[key] = k
		}
	}

	result := make([]string, 0, len(envMap))
	for key, v := range envMap {
		result = append(result, names[key]+"="+v)
	}
	slices.Sort(result)
	return result
}

// envKey folds variable names on Windows, where they are case-insensitive.
func envKey(k string) string {
	if runtime.GOOS == "windows" {
		return strings.ToUpper(k)
	}
	return k
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		k, v, ok := strings.Cut(e, "=")
		if ok && envKey(k) == envKey("PATH") {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		for _, candidate := range executableNames(filepath.Join(dir, file)) {
			if err := findExecutable(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", exec.ErrNotFound
}

func executableNames(path string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(path) != "" {
		return []string{path}
	}
	return []string{path + ".exe", path + ".bat", path + ".cmd", path}
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if d.IsDir() {
		return os.ErrPermission
	}
	if runtime.GOOS == "windows" || d.Mode()&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

// LookPath resolves an executable against the PATH of the layered environment.
func LookPath(file string, overlay map[string]string) (string, error) {
	return lookPath(file, resolveEnvironment(os.Environ(), overlay))
}
