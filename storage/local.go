package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore resolves artifacts already present on the local filesystem
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a new local artifact store
func NewLocalStore(basePath string) (*LocalStore, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("model directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("model path is not a directory: %s", basePath)
	}

	return &LocalStore{
		basePath: basePath,
	}, nil
}

// Resolve returns the path of a local artifact, verifying it exists
func (s *LocalStore) Resolve(ctx context.Context, key string) (string, error) {
	fullPath := filepath.Join(s.basePath, key)

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("model artifact not found: %s", fullPath)
		}
		return "", fmt.Errorf("failed to stat model artifact: %w", err)
	}

	return fullPath, nil
}
