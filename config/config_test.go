package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("REDIS_HOST", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Flash.TTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestNewConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[http]
port = "9090"
read_timeout = "3s"

[redis]
host = "cache"
db = 2

[flash]
ttl = "30s"

[metrics]
enabled = false
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("HTTP_READ_TIMEOUT", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("FLASH_TTL", "")
	t.Setenv("METRICS_ENABLED", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Flash.TTL)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestNewConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.toml"))

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfigBadDuration(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("FLASH_TTL", "soon")

	_, err := NewConfig()
	assert.ErrorContains(t, err, "FLASH_TTL")
}
