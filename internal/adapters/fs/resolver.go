package fs

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Resolver expands source patterns declared in build descriptions.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ExpandSources expands glob patterns relative to root, keeping declaration order.
// Plain paths are returned unchanged whether or not they exist, so missing
// sources are still reported by the target compiler. A pattern without matches
// is kept verbatim for the same reason.
func (r *Resolver) ExpandSources(patterns []string, root string) ([]string, error) {
	seen := make(map[string]struct{}, len(patterns))
	result := make([]string, 0, len(patterns))
	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		result = append(result, p)
	}

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[") {
			add(pattern)
			continue
		}

		full := pattern
		if !filepath.IsAbs(pattern) {
			full = filepath.Join(root, pattern)
		}
		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "pattern", pattern)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}

		slices.Sort(matches)
		for _, match := range matches {
			if !filepath.IsAbs(pattern) {
				if rel, err := filepath.Rel(root, match); err == nil {
					match = rel
				}
			}
			add(match)
		}
	}

	return result, nil
}
