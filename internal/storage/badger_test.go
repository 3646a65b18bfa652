package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdfdock/pdfdock/internal/config"
)

func newBadgerStore(t *testing.T) System {
	t.Helper()

	sys, err := NewBadger(t.TempDir(), slog.New(slog.NewTextHandler(os.Stderr, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { sys.Close() })
	return sys
}

func TestBadgerRoundTrip(t *testing.T) {
	sys := newBadgerStore(t)
	ctx := context.Background()

	data := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff}
	require.NoError(t, sys.Store(ctx, "blobs/doc", data))

	got, err := sys.Retrieve(ctx, "blobs/doc")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestBadgerOverwrite(t *testing.T) {
	sys := newBadgerStore(t)
	ctx := context.Background()

	require.NoError(t, sys.Store(ctx, "key", []byte("first")))
	require.NoError(t, sys.Store(ctx, "key", []byte("second")))

	got, err := sys.Retrieve(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestBadgerRetrieveMissing(t *testing.T) {
	sys := newBadgerStore(t)

	_, err := sys.Retrieve(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadgerDeleteIdempotent(t *testing.T) {
	sys := newBadgerStore(t)
	ctx := context.Background()

	require.NoError(t, sys.Store(ctx, "key", []byte("data")))
	require.NoError(t, sys.Delete(ctx, "key"))
	require.NoError(t, sys.Delete(ctx, "key"))

	_, err := sys.Retrieve(ctx, "key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadgerValidate(t *testing.T) {
	sys := newBadgerStore(t)
	ctx := context.Background()

	exists, err := sys.Validate(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, sys.Store(ctx, "key", []byte("data")))

	exists, err = sys.Validate(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBadgerRejectsEmptyKey(t *testing.T) {
	sys := newBadgerStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, sys.Store(ctx, "", []byte("data")), ErrInvalidKey)

	_, err := sys.Retrieve(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestBadgerPersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()

	first, err := NewBadger(dir, logger)
	require.NoError(t, err)
	require.NoError(t, first.Store(ctx, "key", []byte("durable")))
	require.NoError(t, first.Close())

	second, err := NewBadger(dir, logger)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Retrieve(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), got)
}

func TestNewSelectsDriver(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fsys, err := New(&config.StorageConfig{Driver: config.DriverFilesystem, BasePath: t.TempDir()}, logger)
	require.NoError(t, err)
	defer fsys.Close()

	bsys, err := New(&config.StorageConfig{Driver: config.DriverBadger, BasePath: t.TempDir()}, logger)
	require.NoError(t, err)
	defer bsys.Close()

	_, err = New(&config.StorageConfig{Driver: "memcache", BasePath: t.TempDir()}, logger)
	assert.Error(t, err)
}
