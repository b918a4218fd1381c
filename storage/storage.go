package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Store resolves a model artifact to a local filesystem path, downloading
// it first when it lives remotely. Stores are read-only: nothing from a
// request is ever written back.
type Store interface {
	// Resolve returns a local path for the artifact named key.
	Resolve(ctx context.Context, key string) (string, error)
}

// StoreType represents the artifact store backend type
type StoreType string

const (
	StoreTypeLocal StoreType = "local"
	StoreTypeS3    StoreType = "s3"
)

// StoreConfig holds configuration for the artifact store
type StoreConfig struct {
	Type         StoreType
	LocalPath    string // base directory for local artifacts
	CacheDir     string // download target for remote artifacts
	S3Bucket     string
	S3Region     string
	AWSAccessKey string
	AWSSecretKey string
}

// NewStore creates a new artifact store based on configuration
func NewStore(cfg StoreConfig) (Store, error) {
	switch cfg.Type {
	case StoreTypeLocal:
		return NewLocalStore(cfg.LocalPath)
	case StoreTypeS3:
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}

// NewStoreFromEnv creates an artifact store from environment variables
func NewStoreFromEnv() (Store, error) {
	storeType := os.Getenv("MODEL_STORAGE")
	if storeType == "" {
		storeType = "local" // Default to local for development
	}

	cfg := StoreConfig{
		Type: StoreType(storeType),
	}

	switch StoreType(storeType) {
	case StoreTypeLocal:
		localPath := os.Getenv("MODEL_DIR")
		if localPath == "" {
			localPath = "." // keys are paths relative to the working directory
		}
		cfg.LocalPath = localPath
		return NewLocalStore(cfg.LocalPath)

	case StoreTypeS3:
		cfg.S3Bucket = os.Getenv("AWS_S3_BUCKET")
		cfg.S3Region = os.Getenv("AWS_REGION")
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1" // Default region
		}
		cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
		cfg.CacheDir = os.Getenv("MODEL_CACHE_DIR")
		if cfg.CacheDir == "" {
			cfg.CacheDir = "./models/cache"
		}

		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 model storage")
		}

		return NewS3Store(cfg)

	default:
		return nil, fmt.Errorf("unknown store type: %s", storeType)
	}
}
