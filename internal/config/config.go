package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendAuto   = ""
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds application configuration.
type Config struct {
	Backend string `yaml:"backend"` // "json" | "sqlite" | "redis", empty = sqlite if present, else json
	DataDir string `yaml:"dataDir"`

	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`

	LogLevel  string `yaml:"logLevel"`  // "debug" | "info" | "warn" | "error"
	PrettyLog bool   `yaml:"prettyLog"` // console encoder instead of JSON
	Quiet     bool   `yaml:"quiet"`     // only error notifications are shown

	FaviconService     string        `yaml:"faviconService"`
	FaviconCacheDir    string        `yaml:"faviconCacheDir"`
	FaviconTimeout     time.Duration `yaml:"faviconTimeout"`
	FaviconConcurrency int           `yaml:"faviconConcurrency"`

	DefaultSort string `yaml:"defaultSort"` // "name" | "type" | "domain" | "date"
}

// DefaultConfig returns the default configuration rooted at dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{
		Backend:            BackendAuto,
		DataDir:            dataDir,
		RedisAddr:          "localhost:6379",
		LogLevel:           "warn",
		PrettyLog:          true,
		FaviconService:     "www.google.com",
		FaviconCacheDir:    filepath.Join(dataDir, "favicons"),
		FaviconTimeout:     5 * time.Second,
		FaviconConcurrency: 8,
		DefaultSort:        "name",
	}
}

// Load reads config from the YAML file at path.
// Creates the file with defaults if it doesn't exist. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	defaults := DefaultConfig(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		config := defaults
		// Non-fatal: defaults are usable even if the file can't be written
		_ = Save(path, &config)
		if err := config.applyEnv(); err != nil {
			return nil, err
		}
		return &config, nil
	}

	config := defaults
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	// Apply defaults for fields emptied in the file
	if config.DataDir == "" {
		config.DataDir = defaults.DataDir
	}
	if config.FaviconService == "" {
		config.FaviconService = defaults.FaviconService
	}
	if config.FaviconCacheDir == "" {
		config.FaviconCacheDir = filepath.Join(config.DataDir, "favicons")
	}
	if config.FaviconTimeout <= 0 {
		config.FaviconTimeout = defaults.FaviconTimeout
	}
	if config.FaviconConcurrency <= 0 {
		config.FaviconConcurrency = defaults.FaviconConcurrency
	}
	if config.DefaultSort == "" {
		config.DefaultSort = defaults.DefaultSort
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes config to the YAML file.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnv overrides fields from SHELF_* environment variables.
func (c *Config) applyEnv() error {
	c.Backend = getenv("SHELF_BACKEND", c.Backend)
	c.DataDir = getenv("SHELF_DATA_DIR", c.DataDir)
	c.RedisAddr = getenv("SHELF_REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getenv("SHELF_REDIS_PASSWORD", c.RedisPassword)
	c.LogLevel = getenv("SHELF_LOG_LEVEL", c.LogLevel)
	c.FaviconService = getenv("SHELF_FAVICON_SERVICE", c.FaviconService)
	c.FaviconCacheDir = getenv("SHELF_FAVICON_CACHE_DIR", c.FaviconCacheDir)

	if v := os.Getenv("SHELF_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SHELF_REDIS_DB %q: %w", v, err)
		}
		c.RedisDB = n
	}
	if v := os.Getenv("SHELF_QUIET"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SHELF_QUIET %q: %w", v, err)
		}
		c.Quiet = b
	}
	if v := os.Getenv("SHELF_PRETTY_LOG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SHELF_PRETTY_LOG %q: %w", v, err)
		}
		c.PrettyLog = b
	}

	switch c.Backend {
	case BackendAuto, BackendJSON, BackendSQLite, BackendRedis:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DefaultConfigFilePath returns the default config path: ~/.config/shelf/config.yaml
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "shelf", "config.yaml"), nil
}
