package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"walletlink/internal/domain"
)

const recordExt = ".json"

// ErrInvalidKey is returned for storage keys that cannot name a file.
var ErrInvalidKey = errors.New("store: invalid key")

// FileStorage keeps each record in its own file under dir.
type FileStorage struct {
	dir string
	mu  sync.Mutex
}

// NewFileStorage returns a FileStorage rooted at dir, creating it with
// owner-only permissions if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create store dir %s", dir)
	}
	return &FileStorage{dir: dir}, nil
}

// Dir returns the directory records live in.
func (s *FileStorage) Dir() string { return s.dir }

// Get reads the record stored under key.
func (s *FileStorage) Get(key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok, err := readFile(path)
	if err != nil {
		return nil, false, errors.Wrapf(err, "read %s", key)
	}
	return b, ok, nil
}

// Put replaces the record under key.
func (s *FileStorage) Put(key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Wrapf(writeFile(path, value, 0o600), "write %s", key)
}

// Delete removes the record under key, if any.
func (s *FileStorage) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Wrapf(removeFile(path), "delete %s", key)
}

func (s *FileStorage) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", errors.Wrapf(ErrInvalidKey, "%q", key)
	}
	return filepath.Join(s.dir, key+recordExt), nil
}

// Compile-time assertion that FileStorage implements domain.Storage.
var _ domain.Storage = (*FileStorage)(nil)
