package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps uploads on local disk and serves them under the fixed
// /uploads path (the HTTP layer mounts the directory as static).
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a store
// over it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *LocalStore) Dir() string { return s.dir }

// Save writes the object to disk.  filepath.Base strips any path
// components a client might smuggle into the name.
func (s *LocalStore) Save(_ context.Context, objectName string, r io.Reader) error {
	f, err := os.Create(filepath.Join(s.dir, filepath.Base(objectName)))
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return f.Close()
}

// Delete removes the object file.  Missing files are not an error; callers
// treat deletion as best-effort anyway.
func (s *LocalStore) Delete(_ context.Context, objectName string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(objectName)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// URL renders the fixed upload path used by the static file route.
func (s *LocalStore) URL(objectName string) string {
	return "/uploads/" + filepath.Base(objectName)
}
