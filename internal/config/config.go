package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/glabrego/rss-cli/internal/storage"
)

const (
	DefaultDBPath    = "feeds.json"
	DefaultUserAgent = "rss-cli/1.0"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	DBPath      string
	HTTPTimeout time.Duration
	UserAgent   string
	LogFile     string
	LogLevel    log.Level
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		DBPath:    os.Getenv("RSS_CLI_DB_PATH"),
		UserAgent: os.Getenv("RSS_CLI_USER_AGENT"),
		LogFile:   os.Getenv("RSS_CLI_LOG_FILE"),
		LogLevel:  log.InfoLevel,
	}

	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if raw := os.Getenv("RSS_CLI_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("RSS_CLI_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if raw := os.Getenv("RSS_CLI_LOG_LEVEL"); raw != "" {
		level, err := log.ParseLevel(raw)
		if err != nil {
			return Config{}, fmt.Errorf("RSS_CLI_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the settings every command needs. The collection path is
// checked separately by ValidateStorage since only the UI opens it.
func (c Config) Validate() error {
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTPTimeout must not be negative: %s", c.HTTPTimeout)
	}
	if c.UserAgent == "" {
		return errors.New("UserAgent is required")
	}
	return nil
}

func (c Config) ValidateStorage() error {
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if !storage.Supported(c.DBPath) {
		return fmt.Errorf("DBPath must end in .json, .yml, .yaml, .db, .sqlite or .sqlite3: %s", c.DBPath)
	}
	return nil
}
