package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilesystemStore(t *testing.T) System {
	t.Helper()

	sys, err := NewFilesystem(t.TempDir(), slog.New(slog.NewTextHandler(os.Stderr, nil)))
	require.NoError(t, err)
	return sys
}

func TestFilesystemRoundTrip(t *testing.T) {
	sys := newFilesystemStore(t)
	ctx := context.Background()

	data := []byte("hello world")
	require.NoError(t, sys.Store(ctx, "blobs/test-key", data))

	got, err := sys.Retrieve(ctx, "blobs/test-key")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestFilesystemOverwrite(t *testing.T) {
	sys := newFilesystemStore(t)
	ctx := context.Background()

	require.NoError(t, sys.Store(ctx, "key", []byte("first")))
	require.NoError(t, sys.Store(ctx, "key", []byte("second")))

	got, err := sys.Retrieve(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestFilesystemRetrieveMissing(t *testing.T) {
	sys := newFilesystemStore(t)

	_, err := sys.Retrieve(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilesystemDeleteIdempotent(t *testing.T) {
	sys := newFilesystemStore(t)
	ctx := context.Background()

	require.NoError(t, sys.Store(ctx, "key", []byte("data")))
	require.NoError(t, sys.Delete(ctx, "key"))
	require.NoError(t, sys.Delete(ctx, "key"))

	_, err := sys.Retrieve(ctx, "key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilesystemValidate(t *testing.T) {
	sys := newFilesystemStore(t)
	ctx := context.Background()

	exists, err := sys.Validate(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, sys.Store(ctx, "key", []byte("data")))

	exists, err = sys.Validate(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFilesystemRejectsTraversal(t *testing.T) {
	sys := newFilesystemStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "a/../../b"} {
		assert.ErrorIs(t, sys.Store(ctx, key, []byte("data")), ErrInvalidKey, "key %q", key)

		_, err := sys.Retrieve(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestFilesystemPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()

	first, err := NewFilesystem(dir, logger)
	require.NoError(t, err)
	require.NoError(t, first.Store(ctx, "nested/key", []byte("durable")))
	require.NoError(t, first.Close())

	second, err := NewFilesystem(dir, logger)
	require.NoError(t, err)

	got, err := second.Retrieve(ctx, "nested/key")
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), got)

	// Payload lands as a plain file under the base path.
	_, statErr := os.Stat(filepath.Join(dir, "nested", "key"))
	assert.NoError(t, statErr)
}
