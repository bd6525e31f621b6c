package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Registry  RegistryConfig
	Desktop   DesktopConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	// CORSOrigins is a comma separated origin list; empty allows any origin
	CORSOrigins string `envconfig:"DESKTOP_CORS_ORIGINS" default:""`
}

// StorageConfig holds durable record configuration.
type StorageConfig struct {
	// Dir is where records are written; empty keeps everything in memory
	Dir string `envconfig:"DESKTOP_STORAGE_DIR" default:"./data"`
}

// RegistryConfig holds application registry configuration.
type RegistryConfig struct {
	ManifestDir string `envconfig:"DESKTOP_MANIFEST_DIR" default:""`
}

// DesktopConfig holds window manager defaults.
type DesktopConfig struct {
	Theme          string `envconfig:"DESKTOP_THEME" default:"classic"`
	ViewportWidth  int    `envconfig:"DESKTOP_VIEWPORT_WIDTH" default:"1280"`
	ViewportHeight int    `envconfig:"DESKTOP_VIEWPORT_HEIGHT" default:"800"`
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

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Storage: StorageConfig{
			Dir: "./data",
		},
		Desktop: DesktopConfig{
			Theme:          "classic",
			ViewportWidth:  1280,
			ViewportHeight: 800,
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
