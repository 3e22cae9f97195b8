package ports

import (
	"context"

	"go.trai.ch/hbuild/internal/core/domain"
)

// CacheStore persists the object cache of one output configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type CacheStore interface {
	// Load reads the cache file at path. A missing file yields an empty map.
	Load(ctx context.Context, path string) (map[string]string, error)

	// Save re-reads the file at path, unions entries into it and writes the union back.
	Save(ctx context.Context, path string, entries map[string]string) error
}

// Hasher computes cache digests.
type Hasher interface {
	// Digest chains the source bytes, every header's bytes in the given order,
	// the language standard token and the optimization level code.
	Digest(ctx context.Context, source string, headers []string, opts domain.CompileOptions) (string, error)

	// Reset drops memoized file digests. It is called once per project build.
	Reset()
}

// Verifier checks produced files.
type Verifier interface {
	// Exists reports whether path exists.
	Exists(path string) bool

	// VerifyArtefact fails with domain.ErrArtefactMissing if path does not exist
	// and returns the content fingerprint otherwise.
	VerifyArtefact(path string) (string, error)
}
