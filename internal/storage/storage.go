// Package storage provides the durable keyed blob store backing uploaded
// documents. It defines a System interface for storage operations and
// includes Badger and filesystem implementations.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdfdock/pdfdock/internal/config"
)

// System defines the storage operations interface for blob storage.
// Implementations handle the underlying storage mechanism while providing
// a consistent API for storing and retrieving binary data.
type System interface {
	// Store saves data at the specified key. If the key already exists,
	// its contents are replaced atomically from the caller's perspective.
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at the specified key.
	// Returns ErrNotFound if the key does not exist.
	// Returns ErrInvalidKey if the key is malformed.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete deletes the data at the specified key.
	// Returns nil if the key does not exist (idempotent).
	// Returns ErrInvalidKey if the key is malformed.
	Delete(ctx context.Context, key string) error

	// Validate checks if a key exists and is accessible.
	// Returns (true, nil) if the key exists and is readable.
	// Returns (false, nil) if the key does not exist.
	// Returns (false, error) for permission or system errors.
	Validate(ctx context.Context, key string) (bool, error)

	// Close releases the underlying store.
	Close() error
}

// New creates a storage system using the configured driver.
func New(cfg *config.StorageConfig, logger *slog.Logger) (System, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		return NewBadger(cfg.BasePath, logger)
	case config.DriverFilesystem:
		return NewFilesystem(cfg.BasePath, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
