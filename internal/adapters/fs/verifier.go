package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier checks produced files and fingerprints them.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Exists reports whether path exists.
func (v *Verifier) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// VerifyArtefact fails with ErrArtefactMissing when path does not exist and
// returns its fingerprint otherwise.
func (v *Verifier) VerifyArtefact(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", zerr.With(zerr.Wrap(domain.ErrArtefactMissing, "build step reported success"), "path", path)
		}
		return "", zerr.With(zerr.Wrap(err, "failed to stat artefact"), "path", path)
	}
	return Fingerprint(path)
}

// Fingerprint computes the XXHash of a file's content.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrFileOpenFailed, err.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrFileHashFailed, err.Error()), "path", path)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
