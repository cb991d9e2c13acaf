package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matst80/listing-filters/pkg/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.ListenAddress)
	assert.Equal(t, 30*time.Minute, cfg.Redis.HandoffTTL)
	assert.Equal(t, "global", cfg.Rabbit.Prefix)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, filter.ForSale, cfg.DefaultStatus())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 15*time.Second, cfg.Timeouts.Shutdown)
	assert.Empty(t, cfg.Redis.Address)
}

func TestLoadYamlWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  listen_address: ":9000"
  allowed_origins: ["https://homes.example"]
redis:
  address: "localhost:6379"
  handoff_ttl: 10m
filters:
  default_status: "For Lease"
logging:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SERVER_LISTEN_ADDRESS", ":9100")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.ListenAddress)
	assert.Equal(t, []string{"https://homes.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 10*time.Minute, cfg.Redis.HandoffTTL)
	assert.Equal(t, filter.ForLease, cfg.DefaultStatus())
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"FILTERS_DEFAULT_STATUS": "Archived",
		"LOGGING_LEVEL":          "trace",
		"REDIS_ADDRESS":          "no-port",
		"REDIS_DB":               "99",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load(t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestLoadBrokenYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [oops"), 0o600))
	_, err := Load(dir)
	assert.Error(t, err)
}
