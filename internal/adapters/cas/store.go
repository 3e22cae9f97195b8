// Package cas implements the persisted object cache of an output folder.
package cas

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"go.trai.ch/hbuild/internal/core/domain"
	"go.trai.ch/hbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// formatVersion is bumped whenever the encoded layout changes.
const formatVersion = 1

// cacheFile is the on-disk layout, CBOR encoded and zstd compressed.
type cacheFile struct {
	Version int               `cbor:"1,keyasint"`
	Entries map[string]string `cbor:"2,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode

	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	// Core deterministic encoding: the same entries always produce the same bytes.
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cas: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("cas: CBOR decoder initialization failed: " + err.Error())
	}
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("cas: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("cas: zstd decoder initialization failed: " + err.Error())
	}
}

// Store implements ports.CacheStore with one compressed CBOR file per output configuration.
type Store struct {
	mu     sync.Mutex
	logger ports.Logger
}

// NewStore creates a new Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads the cache file at path. A missing, empty or undecodable file yields an empty map.
func (s *Store) Load(_ context.Context, path string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(filepath.Clean(path))
}

// Save re-reads the current file, unions entries into it and writes the union back.
// Entries in the argument win over entries on disk.
func (s *Store) Save(_ context.Context, path string, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path = filepath.Clean(path)
	current, err := s.read(path)
	if err != nil {
		return err
	}
	maps.Copy(current, entries)

	data, err := encMode.Marshal(cacheFile{Version: formatVersion, Entries: current})
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "path", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "path", path)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(zstdEncoder.EncodeAll(data, nil)); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "path", path)
	}
	return nil
}

func (s *Store) read(path string) (map[string]string, error) {
	//nolint:gosec // Path is cleaned and derived from the output folder
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, err.Error()), "path", path)
	}
	if len(raw) == 0 {
		return make(map[string]string), nil
	}

	data, err := zstdDecoder.DecodeAll(raw, nil)
	if err != nil {
		s.logger.Warn("discarding unreadable object cache", "path", path, "error", err.Error())
		return make(map[string]string), nil
	}

	var file cacheFile
	if err := decMode.Unmarshal(data, &file); err != nil {
		s.logger.Warn("discarding unreadable object cache", "path", path, "error", err.Error())
		return make(map[string]string), nil
	}
	if file.Version != formatVersion || file.Entries == nil {
		// Unknown layouts are dropped; the content digest keeps a rebuild correct.
		return make(map[string]string), nil
	}
	return file.Entries, nil
}
