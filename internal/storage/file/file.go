// Package file provides a BlobStore that keeps each blob in its own JSON file
// beneath a root directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/observability"
	"github.com/cory-johannsen/cogworld/internal/storage"
)

// Ext is appended to every key to form its file name.
const Ext = ".json"

// Store maps key "a/b" to the file "<root>/a/b.json".
type Store struct {
	root   string
	logger *zap.Logger
}

// New creates a Store rooted at dir. The directory is created lazily on the
// first Put.
//
// Precondition: dir must be non-empty.
func New(dir string, logger *zap.Logger) *Store {
	return &Store{root: dir, logger: observability.OrNop(logger)}
}

// Root returns the directory the store writes beneath.
func (s *Store) Root() string {
	return s.root
}

// Path returns the file path that backs key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key)+Ext)
}

// Get reads the file backing key.
//
// Postcondition: Returns the file contents, storage.ErrNotFound when the file
// does not exist, or a wrapped I/O error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
		}
		return nil, fmt.Errorf("reading %s: %w", s.Path(key), err)
	}
	return data, nil
}

// Put writes data to a temp file beside the target and renames it into
// place, so a crash never leaves a half-written record.
//
// Postcondition: On success the file backing key holds exactly data and any
// missing parent directories exist.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.Path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	s.logger.Debug("blob written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

// Exists reports whether the file backing key is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if err := storage.ValidateKey(key); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := os.Stat(s.Path(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", s.Path(key), err)
}
