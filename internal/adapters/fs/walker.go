// Package fs provides file system adapters for hashing, verifying and cleaning build outputs.
package fs

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root.
func (w *Walker) WalkFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Clean removes root and returns the number of files it contained.
// A missing root is not an error.
func (w *Walker) Clean(root string) (int, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, zerr.With(zerr.Wrap(err, "failed to stat output folder"), "path", root)
	}

	count := 0
	for range w.WalkFiles(root) {
		count++
	}

	if err := os.RemoveAll(root); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to remove output folder"), "path", root)
	}
	return count, nil
}
