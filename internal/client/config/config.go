// Package config loads the client configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerURL         = "http://localhost:7070"
	DefaultDBPath            = "cartosync.db"
	DefaultSaveDebounce      = 1000 * time.Millisecond
	DefaultReconnectInterval = 100 * time.Millisecond
	DefaultLogLevel          = "info"
)

// ErrInvalidConfig is returned when a loaded value can not be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the client configuration.
type Config struct {
	ServerURL         string        `yaml:"server_url"`
	DBPath            string        `yaml:"db_path"`
	LogLevel          string        `yaml:"log_level"`
	SaveDebounce      time.Duration `yaml:"save_debounce"`
	ReconnectInterval time.Duration `yaml:"reconnect_interval"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		ServerURL:         DefaultServerURL,
		DBPath:            DefaultDBPath,
		LogLevel:          DefaultLogLevel,
		SaveDebounce:      DefaultSaveDebounce,
		ReconnectInterval: DefaultReconnectInterval,
	}
}

// DefaultPath returns config.yaml in the user config directory, or in the
// working directory if that is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "cartosync.yaml"
	}
	return filepath.Join(dir, "cartosync", "config.yaml")
}

// Load reads path and fills unset keys with defaults. A missing file yields
// the defaults and a warning, a malformed one is an error.
func Load(path string, logger *slog.Logger) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Config file not found, using defaults", "path", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// ключи, отсутствующие в файле, сохраняют значения по умолчанию
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Config loaded", "path", path)
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Validate checks the server URL, durations and log level.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: server_url %q must be an http(s) URL", ErrInvalidConfig, c.ServerURL)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is empty", ErrInvalidConfig)
	}
	if c.SaveDebounce < 0 {
		return fmt.Errorf("%w: save_debounce must not be negative", ErrInvalidConfig)
	}
	if c.ReconnectInterval < 0 {
		return fmt.Errorf("%w: reconnect_interval must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}
