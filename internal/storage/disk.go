package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage keeps objects as files under a root directory. It is the
// default for the sandbox when no MinIO server is configured.
type DiskStorage struct {
	root string
}

// NewDiskStorage returns a DiskStorage rooted at dir.
func NewDiskStorage(dir string) (*DiskStorage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	return &DiskStorage{root: abs}, nil
}

// EnsureBucket creates the root directory.
func (d *DiskStorage) EnsureBucket(ctx context.Context) error {
	return os.MkdirAll(d.root, 0o755)
}

func (d *DiskStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return f.Close()
}

func (d *DiskStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := d.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (d *DiskStorage) Delete(ctx context.Context, key string) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Bucket returns the root directory.
func (d *DiskStorage) Bucket() string {
	return d.root
}

// path maps key inside root, rejecting keys that would escape it.
func (d *DiskStorage) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(d.root, clean), nil
}
