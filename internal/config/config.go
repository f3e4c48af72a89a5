// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
	StorageMongo  = "mongo"
)

// Config is the server configuration
type Config struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StorageType   string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL      string `env:"REDIS_URL"`
	SQLitePath    string `env:"SQLITE_PATH"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"playeradmin"`

	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	// Origins allowed to call the API from a browser; empty disables CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Load parses the environment and checks the backend settings
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings missing for the selected storage backend
func (c Config) Validate() error {
	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL required when STORAGE_TYPE=%s", c.StorageType)
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH required when STORAGE_TYPE=%s", c.StorageType)
		}
	case StorageMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI required when STORAGE_TYPE=%s", c.StorageType)
		}
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// Addr is the listen address
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
