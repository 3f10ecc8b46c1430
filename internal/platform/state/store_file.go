package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists each slot as one JSON file under a data directory.
// This is the default backend; writes replace the whole file, with no
// partial-write protection, matching the single-writer model.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileStore) Read(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, true, nil
}

func (f *FileStore) Write(_ context.Context, key string, data []byte) error {
	if err := os.WriteFile(f.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}
