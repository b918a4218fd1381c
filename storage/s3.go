package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store downloads model artifacts from S3 into a local cache directory
type S3Store struct {
	client   *s3.Client
	bucket   string
	cacheDir string
}

// NewS3Store creates a new S3 artifact store
func NewS3Store(cfg StoreConfig) (*S3Store, error) {
	ctx := context.Background()

	var awsCfg aws.Config
	var err error

	// Load AWS config
	if cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		// Use explicit credentials
		awsCfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.S3Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AWSAccessKey,
				cfg.AWSSecretKey,
				"",
			)),
		)
	} else {
		// Use default credentials (from environment, IAM role, etc.)
		awsCfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.S3Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create model cache directory: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)

	return &S3Store{
		client:   client,
		bucket:   cfg.S3Bucket,
		cacheDir: cfg.CacheDir,
	}, nil
}

// Resolve downloads the artifact into the cache directory unless a cached
// copy already exists, and returns its local path
func (s *S3Store) Resolve(ctx context.Context, key string) (string, error) {
	localPath := filepath.Join(s.cacheDir, filepath.Base(key))
	if _, err := os.Stat(localPath); err == nil {
		return localPath, nil
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to download model from S3: %w", err)
	}
	defer result.Body.Close()

	// Download to a temp file first so a partial transfer never becomes a
	// cached model.
	tmp, err := os.CreateTemp(s.cacheDir, "model-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, result.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write model to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), localPath); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to move model into cache: %w", err)
	}

	return localPath, nil
}
