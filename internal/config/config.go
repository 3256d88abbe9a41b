package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the player profile and round history
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Resource paths
	DataDir     string
	StorageType string

	// Table settings
	StartingBalance       int64
	DealerPause           time.Duration
	AllowResplit          bool
	AllowDoubleAfterSplit bool

	// Optional round indexing
	ElasticsearchURL      string
	ElasticsearchUsername string
	ElasticsearchPassword string
	ElasticsearchPrefix   string
	ElasticsearchRetry    time.Duration // Interval for re-indexing rounds that failed to index

	// Environment
	Environment string // "development" or "production"
	LogLevel    string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := &Config{
		DataDir:               getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		StorageType:           getEnvWithDefault("STORAGE_TYPE", StorageFile),
		Environment:           getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:              getEnvWithDefault("LOG_LEVEL", "INFO"),
		ElasticsearchURL:      os.Getenv("ELASTICSEARCH_URL"),
		ElasticsearchUsername: os.Getenv("ELASTICSEARCH_USERNAME"),
		ElasticsearchPassword: os.Getenv("ELASTICSEARCH_PASSWORD"),
		ElasticsearchPrefix:   getEnvWithDefault("ELASTICSEARCH_INDEX_PREFIX", "blackjack"),
	}

	if cfg.StartingBalance, err = strconv.ParseInt(getEnvWithDefault("STARTING_BALANCE", "500"), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid STARTING_BALANCE: %w", err)
	}
	if cfg.DealerPause, err = time.ParseDuration(getEnvWithDefault("DEALER_PAUSE", "1s")); err != nil {
		return nil, fmt.Errorf("invalid DEALER_PAUSE: %w", err)
	}
	if cfg.ElasticsearchRetry, err = time.ParseDuration(getEnvWithDefault("ELASTICSEARCH_RETRY_INTERVAL", "1m")); err != nil {
		return nil, fmt.Errorf("invalid ELASTICSEARCH_RETRY_INTERVAL: %w", err)
	}
	if cfg.AllowResplit, err = strconv.ParseBool(getEnvWithDefault("ALLOW_RESPLIT", "true")); err != nil {
		return nil, fmt.Errorf("invalid ALLOW_RESPLIT: %w", err)
	}
	if cfg.AllowDoubleAfterSplit, err = strconv.ParseBool(getEnvWithDefault("ALLOW_DOUBLE_AFTER_SPLIT", "true")); err != nil {
		return nil, fmt.Errorf("invalid ALLOW_DOUBLE_AFTER_SPLIT: %w", err)
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if cfg.StorageType != StorageMemory {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// validate checks that the configuration is usable
func (c *Config) validate() error {
	switch c.StorageType {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("STORAGE_TYPE must be one of %s, %s, %s", StorageFile, StorageSQLite, StorageMemory)
	}
	if c.StartingBalance <= 0 {
		return fmt.Errorf("STARTING_BALANCE must be positive")
	}
	if c.DealerPause < 0 {
		return fmt.Errorf("DEALER_PAUSE cannot be negative")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// ProfilePath returns the location of the JSON player profile
func (c *Config) ProfilePath() string {
	return filepath.Join(c.DataDir, "player_profile.json")
}

// DatabasePath returns the location of the SQLite database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "blackjack.db")
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
