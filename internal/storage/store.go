package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// BlobStore persists generated audio and returns a locator for it.
type BlobStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// LocalStore writes blobs under a single directory on local disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}
	return path, nil
}
