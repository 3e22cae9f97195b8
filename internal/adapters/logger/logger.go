// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	out    io.Writer
	level  *slog.LevelVar
	json   bool
	mu     sync.RWMutex
}

// New creates a Logger writing text to stderr at info level.
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Logger writing text to w at info level.
func NewWithWriter(w io.Writer) *Logger {
	l := &Logger{out: w, level: new(slog.LevelVar)}
	l.level.Set(slog.LevelInfo)
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.rebuild()
}

// SetJSON switches between the JSON and text handlers.
func (l *Logger) SetJSON(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.json = enabled
	l.rebuild()
}

// SetVerbose lowers the level to debug.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.level.Set(slog.LevelDebug)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// rebuild must be called with mu held or before the logger is shared.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}
	var handler slog.Handler
	if l.json {
		handler = slog.NewJSONHandler(l.out, opts)
	} else {
		handler = slog.NewTextHandler(l.out, opts)
	}
	l.logger = slog.New(handler)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg, args...)
}

// Error logs an error together with the metadata attached along its chain.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", append([]any{"error", err}, metadataArgs(err)...)...)
}

func metadataArgs(err error) []any {
	var args []any
	seen := make(map[string]struct{})
	for current := err; current != nil; current = errors.Unwrap(current) {
		zErr, ok := current.(*zerr.Error)
		if !ok {
			continue
		}
		for k, v := range zErr.Metadata() {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			args = append(args, k, v)
		}
	}
	return args
}

var _ ports.Logger = (*Logger)(nil)
