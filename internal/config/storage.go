package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

const (
	// EnvStorageDriver overrides the blob storage driver.
	EnvStorageDriver = "STORAGE_DRIVER"

	// EnvStorageBasePath overrides the blob storage base path.
	EnvStorageBasePath = "STORAGE_BASE_PATH"

	// EnvStorageMaxUploadSize overrides the maximum upload size.
	EnvStorageMaxUploadSize = "STORAGE_MAX_UPLOAD_SIZE"
)

// Driver identifies a blob storage backend.
type Driver string

// Supported storage drivers.
const (
	DriverBadger     Driver = "badger"
	DriverFilesystem Driver = "filesystem"
)

// Validate checks if the driver is a supported storage backend.
func (d Driver) Validate() error {
	switch d {
	case DriverBadger, DriverFilesystem:
		return nil
	default:
		return fmt.Errorf("invalid storage driver: %s (must be badger or filesystem)", d)
	}
}

// StorageConfig contains blob storage configuration.
type StorageConfig struct {
	// Driver selects the keyed store backend holding uploaded binaries.
	// Default: badger
	Driver Driver `toml:"driver"`

	// BasePath is the root directory for the blob store.
	// Default: ".data/blobs"
	BasePath string `toml:"base_path"`

	// MaxUploadSize is the largest accepted upload, human-readable.
	// Default: "50MB"
	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64
}

// MaxUploadSizeBytes returns the parsed maximum upload size in bytes.
func (c *StorageConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *StorageConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *StorageConfig) Merge(overlay *StorageConfig) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
}

func (c *StorageConfig) loadDefaults() {
	if c.Driver == "" {
		c.Driver = DriverBadger
	}
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *StorageConfig) loadEnv() {
	if v := os.Getenv(EnvStorageDriver); v != "" {
		c.Driver = Driver(v)
	}
	if v := os.Getenv(EnvStorageBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvStorageMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *StorageConfig) validate() error {
	if err := c.Driver.Validate(); err != nil {
		return err
	}
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
