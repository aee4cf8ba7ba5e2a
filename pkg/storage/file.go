package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/memestyle/pkg/errors"
)

// PathFunc resolves a key to the absolute path of its document.
type PathFunc func(key string) (string, error)

// DirPaths returns a PathFunc placing each key directly inside dir,
// using the key itself as the file name.
func DirPaths(dir string) PathFunc {
	return func(key string) (string, error) {
		if err := errors.ValidateKey(key); err != nil {
			return "", err
		}
		return filepath.Join(dir, key), nil
	}
}

// FileStore stores each key as a file. Writes go to a temporary file in
// the target directory which is then renamed over the destination, so a
// reader never observes a partially written document.
type FileStore struct {
	mu   sync.RWMutex
	dir  string // empty when keys are resolved by a custom PathFunc
	path PathFunc
	perm os.FileMode
}

// NewFileStore creates a file store rooted at dir.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	s := NewFileStoreWithPaths(DirPaths(dir))
	s.dir = dir
	return s, nil
}

// NewFileStoreWithPaths creates a file store that resolves keys with fn.
func NewFileStoreWithPaths(fn PathFunc) *FileStore {
	return &FileStore{path: fn, perm: 0644}
}

// Get reads the file for key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return data, true, nil
}

// Set atomically replaces the file for key.
func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFileAtomic(path, data, s.perm)
}

// Delete removes the file for key.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// Keys lists the stored keys in sorted order. It is only supported for
// stores created with NewFileStore.
func (s *FileStore) Keys(ctx context.Context) ([]string, error) {
	if s.dir == "" {
		return nil, errors.New(errors.ErrCodeUnsupported, "listing keys needs a directory-backed store")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read storage dir: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isTempFile(name) || errors.ValidateKey(name) != nil {
			continue
		}
		keys = append(keys, name)
	}
	return keys, nil
}

// Dir returns the root directory, or "" for a custom PathFunc.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path used for key.
func (s *FileStore) Path(key string) (string, error) {
	return s.path(key)
}

// Close does nothing for file store.
func (s *FileStore) Close() error {
	return nil
}

// tempSuffix marks in-flight writes; see isTempFile.
const tempSuffix = ".tmp"

func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+tempSuffix)
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// isTempFile reports whether name is an in-flight write left by writeFileAtomic.
func isTempFile(name string) bool {
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, tempSuffix)
}

// Ensure FileStore implements Store and Lister.
var (
	_ Store  = (*FileStore)(nil)
	_ Lister = (*FileStore)(nil)
)
