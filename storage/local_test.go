package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStore_Resolve(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "sitecheck.onnx")
	require.NoError(t, os.WriteFile(modelPath, []byte("onnx"), 0644))

	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	resolved, err := store.Resolve(context.Background(), "sitecheck.onnx")
	require.NoError(t, err)
	require.Equal(t, modelPath, resolved)
}

func TestLocalStore_ResolveMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Resolve(context.Background(), "absent.onnx")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

func TestNewLocalStore_MissingDirectory(t *testing.T) {
	_, err := NewLocalStore(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestNewStore_UnknownType(t *testing.T) {
	_, err := NewStore(StoreConfig{Type: "ftp"})
	require.Error(t, err)
}
