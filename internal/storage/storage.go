package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"artisanmart/internal/config"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// New builds the backend selected by cfg and makes sure its bucket exists.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStorage, error) {
	var (
		backend ObjectStorage
		err     error
	)
	switch cfg.Backend {
	case "", "disk":
		backend, err = NewDiskStorage(cfg.Dir)
	case "minio":
		backend, err = NewMinioClient(cfg.Minio)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	if err := backend.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare bucket %s: %w", backend.Bucket(), err)
	}
	return backend, nil
}
