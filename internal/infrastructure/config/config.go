package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Agent     AgentConfig
	Desktop   DesktopConfig
	Monitor   MonitorConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string   `envconfig:"PORT" default:"8000"`
	Host        string   `envconfig:"HOST" default:"0.0.0.0"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// StorageConfig selects the durable blob store that backs the virtual file system.
type StorageConfig struct {
	Backend string        `envconfig:"STORAGE_BACKEND" default:"file"` // file, memory, postgres, s3
	Path    string        `envconfig:"STORAGE_PATH" default:"/tmp/ros-storage"`
	Key     string        `envconfig:"STORAGE_KEY" default:"gemini_os_fs"`
	DSN     string        `envconfig:"STORAGE_DSN"`
	Timeout time.Duration `envconfig:"STORAGE_TIMEOUT" default:"5s"`
	S3      S3Config
}

// S3Config holds S3-compatible object store settings.
type S3Config struct {
	Bucket    string `envconfig:"S3_BUCKET" default:"ros"`
	Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	Endpoint  string `envconfig:"S3_ENDPOINT"`
	AccessKey string `envconfig:"S3_ACCESS_KEY"`
	SecretKey string `envconfig:"S3_SECRET_KEY"`
}

// AgentConfig holds the remote function-calling service configuration.
// An empty endpoint disables the agent bridge.
type AgentConfig struct {
	Endpoint string        `envconfig:"AGENT_ENDPOINT"`
	APIKey   string        `envconfig:"AGENT_API_KEY"`
	Model    string        `envconfig:"AGENT_MODEL" default:"gemini-3-flash-preview"`
	Timeout  time.Duration `envconfig:"AGENT_TIMEOUT" default:"2m"`
	Retries  int           `envconfig:"AGENT_RETRIES" default:"2"`
}

// DesktopConfig holds desktop defaults.
type DesktopConfig struct {
	InitialWallpaper string `envconfig:"INITIAL_WALLPAPER" default:"https://picsum.photos/id/29/1920/1080"`
}

// MonitorConfig holds resource-usage sampling settings.
type MonitorConfig struct {
	Interval time.Duration `envconfig:"MONITOR_INTERVAL" default:"1s"`
	Window   int           `envconfig:"MONITOR_WINDOW" default:"20"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "memory", "s3":
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("STORAGE_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("STORAGE_KEY cannot be empty")
	}
	if c.Monitor.Window <= 0 {
		return fmt.Errorf("MONITOR_WINDOW must be positive")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8000",
			Host:        "0.0.0.0",
			CORSOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    "/tmp/ros-storage",
			Key:     "gemini_os_fs",
			Timeout: 5 * time.Second,
			S3: S3Config{
				Bucket: "ros",
				Region: "us-east-1",
			},
		},
		Agent: AgentConfig{
			Model:   "gemini-3-flash-preview",
			Timeout: 2 * time.Minute,
			Retries: 2,
		},
		Desktop: DesktopConfig{
			InitialWallpaper: "https://picsum.photos/id/29/1920/1080",
		},
		Monitor: MonitorConfig{
			Interval: time.Second,
			Window:   20,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
