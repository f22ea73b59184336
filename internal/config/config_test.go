package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, DriverBolt, cfg.Storage.Driver)
	assert.Equal(t, "educom.db", cfg.Storage.Bolt.Path)
	assert.Equal(t, time.Second, cfg.Latency.Login)
	assert.Equal(t, 1500*time.Millisecond, cfg.Latency.Suggest)
	assert.Equal(t, 1200*time.Millisecond, cfg.Latency.Checkout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.HashPasswords)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EDUCOM_STORAGE_DRIVER", "redis")
	t.Setenv("EDUCOM_STORAGE_REDIS_ADDR", "cache:6379")
	t.Setenv("EDUCOM_STORAGE_REDIS_DB", "3")
	t.Setenv("EDUCOM_LATENCY_LOGIN", "0s")
	t.Setenv("EDUCOM_AUTH_HASH_PASSWORDS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 3, cfg.Storage.Redis.DB)
	assert.Zero(t, cfg.Latency.Login)
	assert.True(t, cfg.Auth.HashPasswords)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "educom.yaml")
	body := []byte(`
environment: staging
storage:
  driver: memory
latency:
  search: 0s
auth:
  token_ttl: 1h
allowed_origins: "http://localhost:3000,http://localhost:5173"
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Zero(t, cfg.Latency.Search)
	assert.Equal(t, 700*time.Millisecond, cfg.Latency.Filter)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	base := func() AppConfig {
		return AppConfig{
			Environment: "development",
			Storage:     StorageConfig{Driver: DriverMemory},
			Auth:        AuthConfig{JWTSecret: "x", TokenTTL: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"ok", func(*AppConfig) {}, false},
		{"unknown driver", func(c *AppConfig) { c.Storage.Driver = "etcd" }, true},
		{"bolt without path", func(c *AppConfig) { c.Storage.Driver = DriverBolt }, true},
		{"postgres without dsn", func(c *AppConfig) { c.Storage.Driver = DriverPostgres }, true},
		{"empty secret", func(c *AppConfig) { c.Auth.JWTSecret = "" }, true},
		{"dev secret in production", func(c *AppConfig) { c.Environment = "production"; c.Auth.JWTSecret = devSecret }, true},
		{"zero ttl", func(c *AppConfig) { c.Auth.TokenTTL = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
