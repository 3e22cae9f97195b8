package fs

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// DefaultMemoSize bounds the number of memoized file digests.
const DefaultMemoSize = 4096

type fileDigest [32]byte

// Hasher computes cache digests with BLAKE3.
// File digests are memoized until Reset, so a header shared by many sources
// is read once per build.
type Hasher struct {
	memo    *lru.Cache[string, fileDigest]
	workers int
}

// NewHasher creates a Hasher memoizing up to size file digests.
func NewHasher(size int) (*Hasher, error) {
	memo, err := lru.New[string, fileDigest](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create digest memo")
	}
	return &Hasher{memo: memo, workers: runtime.GOMAXPROCS(0)}, nil
}

// Reset drops every memoized file digest.
func (h *Hasher) Reset() {
	h.memo.Purge()
}

// Digest returns the chained digest of the source, its headers in the given
// order, the language standard token and the optimization level.
// Files are read concurrently; the chain order never depends on scheduling.
func (h *Hasher) Digest(ctx context.Context, source string, headers []string, opts domain.CompileOptions) (string, error) {
	files := make([]string, 0, len(headers)+1)
	files = append(files, source)
	files = append(files, headers...)

	sums := make([]fileDigest, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sum, err := h.digestFile(path)
			if err != nil {
				return err
			}
			sums[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	chain := blake3.New()
	for _, sum := range sums {
		_, _ = chain.Write(sum[:])
	}
	_, _ = chain.Write([]byte{0})
	_, _ = chain.WriteString(string(opts.Standard))
	_, _ = chain.Write([]byte{0})

	var level [8]byte
	binary.LittleEndian.PutUint64(level[:], uint64(opts.Optimization))
	_, _ = chain.Write(level[:])

	return hex.EncodeToString(chain.Sum(nil)), nil
}

// digestFile returns the BLAKE3 digest of a file's content.
func (h *Hasher) digestFile(path string) (fileDigest, error) {
	if sum, ok := h.memo.Get(path); ok {
		return sum, nil
	}

	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return fileDigest{}, zerr.With(zerr.Wrap(domain.ErrFileOpenFailed, err.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := blake3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return fileDigest{}, zerr.With(zerr.Wrap(domain.ErrFileHashFailed, err.Error()), "path", path)
	}

	var sum fileDigest
	copy(sum[:], hasher.Sum(nil))
	h.memo.Add(path, sum)
	return sum, nil
}
