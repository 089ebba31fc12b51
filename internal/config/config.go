package config

import (
	"os"
	"strconv"
	"time"

	"pcon/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Search   SearchConfig
	Session  SessionConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port      string
	AdminPort string
}

// SearchConfig holds manifest search settings
type SearchConfig struct {
	MaxRows int
}

// SessionConfig holds UI session store settings
type SessionConfig struct {
	TTL time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	config := &Config{
		Database: DatabaseConfig{
			URL:          url,
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8080"),
			AdminPort: getEnvOrDefault("ADMIN_PORT", "8081"),
		},
		Search: SearchConfig{
			MaxRows: getEnvIntOrDefault("SEARCH_MAX_ROWS", 500),
		},
		Session: SessionConfig{
			TTL: getEnvDurationOrDefault("SESSION_TTL", 4*time.Hour),
		},
	}

	if config.Search.MaxRows <= 0 {
		return nil, errors.ConfigInvalid("SEARCH_MAX_ROWS must be positive")
	}
	if config.Session.TTL <= 0 {
		return nil, errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	return config, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
