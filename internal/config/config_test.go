package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdfdock/pdfdock/pkg/logging"
)

func TestFinalizeAppliesDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Finalize())

	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, DriverBadger, cfg.Storage.Driver)
	assert.Equal(t, ".data/blobs", cfg.Storage.BasePath)
	assert.Equal(t, int64(50*1000*1000), cfg.Storage.MaxUploadSizeBytes())
	assert.Equal(t, ".data/catalog", cfg.Catalog.BasePath)
	assert.Equal(t, logging.LevelInfo, cfg.Logging.Level)
	assert.Equal(t, logging.FormatText, cfg.Logging.Format)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Assist.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Assist.Model)
	assert.Equal(t, 0.3, cfg.Assist.Temperature)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeoutDuration())
}

func TestFinalizeRejectsInvalidDriver(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{Driver: "redis"}}
	err := cfg.Finalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage driver")
}

func TestFinalizeRejectsInvalidPort(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: 70000}}
	err := cfg.Finalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestFinalizeRejectsInvalidUploadSize(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{MaxUploadSize: "plenty"}}
	err := cfg.Finalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_upload_size")
}

func TestFinalizeRejectsInvalidTemperature(t *testing.T) {
	cfg := &Config{Assist: AssistConfig{Temperature: 3.5}}
	err := cfg.Finalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvServerHost, "0.0.0.0")
	t.Setenv(EnvServerPort, "9090")
	t.Setenv(EnvStorageDriver, "filesystem")
	t.Setenv(EnvStorageMaxUploadSize, "10MB")
	t.Setenv("LOGGING_LEVEL", "debug")
	t.Setenv(EnvAssistAPIKey, "secret")

	cfg := &Config{}
	require.NoError(t, cfg.Finalize())

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, DriverFilesystem, cfg.Storage.Driver)
	assert.Equal(t, int64(10*1000*1000), cfg.Storage.MaxUploadSizeBytes())
	assert.Equal(t, logging.LevelDebug, cfg.Logging.Level)
	assert.True(t, cfg.Assist.Enabled())
	assert.Equal(t, "secret", cfg.Assist.APIKey())
}

func TestAssistKeyNeverFromTOML(t *testing.T) {
	t.Setenv(EnvAssistAPIKey, "")

	cfg := &Config{Assist: AssistConfig{BaseURL: "https://example.com/v1"}}
	require.NoError(t, cfg.Finalize())

	assert.False(t, cfg.Assist.Enabled())
	assert.Empty(t, cfg.Assist.APIKey())
}

func TestMergeOverlay(t *testing.T) {
	base := &Config{
		Server:  ServerConfig{Host: "localhost", Port: 8080},
		Storage: StorageConfig{Driver: DriverBadger, BasePath: ".data/blobs", MaxUploadSize: "50MB"},
	}

	base.Merge(&Config{
		Server:  ServerConfig{Port: 9000},
		Storage: StorageConfig{BasePath: "/var/lib/blobs"},
	})

	assert.Equal(t, "localhost", base.Server.Host)
	assert.Equal(t, 9000, base.Server.Port)
	assert.Equal(t, DriverBadger, base.Storage.Driver)
	assert.Equal(t, "/var/lib/blobs", base.Storage.BasePath)
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, BaseConfigFile), []byte(`
shutdown_timeout = "45s"

[server]
host = "localhost"
port = 8080

[storage]
driver = "badger"
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.test.toml"), []byte(`
[server]
port = 9999
`), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv(EnvServiceEnv, "test")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Finalize())

	assert.Equal(t, "localhost:9999", cfg.Server.Addr())
	assert.Equal(t, "45s", cfg.ShutdownTimeout)
	assert.Equal(t, DriverBadger, cfg.Storage.Driver)
}
