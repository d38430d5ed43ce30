package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "gemini_os_fs", cfg.Storage.Key)
	assert.Equal(t, 5*time.Second, cfg.Storage.Timeout)

	assert.Empty(t, cfg.Agent.Endpoint)
	assert.Equal(t, 2*time.Minute, cfg.Agent.Timeout)

	assert.Equal(t, "https://picsum.photos/id/29/1920/1080", cfg.Desktop.InitialWallpaper)
	assert.Equal(t, 20, cfg.Monitor.Window)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.RateLimit.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8000", cfg.Server.Port)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "127.0.0.1",
		"CORS_ORIGINS":       "http://a.test,http://b.test",
		"STORAGE_BACKEND":    "memory",
		"STORAGE_KEY":        "custom_fs",
		"STORAGE_TIMEOUT":    "250ms",
		"AGENT_ENDPOINT":     "http://agent:8080",
		"AGENT_RETRIES":      "5",
		"MONITOR_INTERVAL":   "2s",
		"MONITOR_WINDOW":     "30",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"RATE_LIMIT_RPS":     "500",
		"RATE_LIMIT_ENABLED": "false",
		"S3_BUCKET":          "backups",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "custom_fs", cfg.Storage.Key)
	assert.Equal(t, 250*time.Millisecond, cfg.Storage.Timeout)
	assert.Equal(t, "backups", cfg.Storage.S3.Bucket)
	assert.Equal(t, "http://agent:8080", cfg.Agent.Endpoint)
	assert.Equal(t, 5, cfg.Agent.Retries)
	assert.Equal(t, 2*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 30, cfg.Monitor.Window)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(*Config) {}, false},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "floppy" }, true},
		{"postgres without dsn", func(c *Config) { c.Storage.Backend = "postgres" }, true},
		{"postgres with dsn", func(c *Config) {
			c.Storage.Backend = "postgres"
			c.Storage.DSN = "postgres://localhost/ros"
		}, false},
		{"empty key", func(c *Config) { c.Storage.Key = "" }, true},
		{"zero monitor window", func(c *Config) { c.Monitor.Window = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
