package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"artisanmart/internal/config"
	"artisanmart/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := storage.New(ctx, config.StorageConfig{Backend: "disk", Dir: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "product photo/a.png", strings.NewReader("png"), 3, "image/png"))

	rc, err := store.Get(ctx, "product photo/a.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	require.NoError(t, store.Delete(ctx, "product photo/a.png"))
	_, err = store.Get(ctx, "product photo/a.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, store.Delete(ctx, "product photo/a.png"))
}

func TestDiskStorage_KeysStayInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := storage.NewDiskStorage(root)
	require.NoError(t, err)
	require.NoError(t, store.EnsureBucket(ctx))

	require.NoError(t, store.Put(ctx, "../../escape.txt", strings.NewReader("x"), 1, "text/plain"))
	rc, err := store.Get(ctx, "escape.txt")
	require.NoError(t, err)
	rc.Close()

	assert.Error(t, store.Put(ctx, "/", strings.NewReader("x"), 1, "text/plain"))
}

func TestNew_Validation(t *testing.T) {
	_, err := storage.New(context.Background(), config.StorageConfig{Backend: "s3"})
	assert.Error(t, err)

	_, err = storage.New(context.Background(), config.StorageConfig{Backend: "minio", Minio: config.MinioConfig{Endpoint: "localhost:9000"}})
	assert.Error(t, err)
}
