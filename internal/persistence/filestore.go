package persistence

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStore persists attachment bytes under opaque storage keys.
type FileStore interface {
	Save(key string, content io.Reader) error
	Open(key string) (io.ReadCloser, error)
	Remove(key string) error
}

// LocalFileStore writes attachment bytes to a directory on disk.
type LocalFileStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalFileStore ensures the upload directory exists.
func NewLocalFileStore(dir string, logger *zap.Logger) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalFileStore{dir: dir, logger: logger}, nil
}

// Save streams content to the file named by key.
func (s *LocalFileStore) Save(key string, content io.Reader) error {
	path := filepath.Join(s.dir, filepath.Base(key))
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, content); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

// Open returns a reader over the stored bytes.
func (s *LocalFileStore) Open(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(key)))
}

// Remove deletes the stored bytes; a missing file is not an error.
func (s *LocalFileStore) Remove(key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
