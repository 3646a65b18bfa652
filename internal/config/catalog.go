package config

import (
	"fmt"
	"os"
)

const (
	// EnvCatalogBasePath overrides the metadata catalog base path.
	EnvCatalogBasePath = "CATALOG_BASE_PATH"
)

// CatalogConfig contains metadata catalog configuration.
// The catalog is deliberately a separate store from the blob backend: it
// persists a single JSON document under a well-known key and is always backed
// by the filesystem driver.
type CatalogConfig struct {
	// BasePath is the root directory for the catalog store.
	// Default: ".data/catalog"
	BasePath string `toml:"base_path"`
}

// Finalize applies defaults, loads environment overrides, and validates the catalog configuration.
func (c *CatalogConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *CatalogConfig) Merge(overlay *CatalogConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
}

func (c *CatalogConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = ".data/catalog"
	}
}

func (c *CatalogConfig) loadEnv() {
	if v := os.Getenv(EnvCatalogBasePath); v != "" {
		c.BasePath = v
	}
}

func (c *CatalogConfig) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}
	return nil
}
