// Package config handles applet settings: the panel key-value source and the
// optional panelkit.toml file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultLogLevel     = "warn"
	DefaultStoreName    = "com.system76.CosmicTheme"
	DefaultStoreVersion = 1
)

// Config represents the panelkit configuration.
type Config struct {
	Log   LogConfig   `toml:"log"`
	Theme ThemeConfig `toml:"theme"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// ThemeConfig describes where the theme store lives.
type ThemeConfig struct {
	StoreName    string `toml:"store_name"`
	StoreVersion uint64 `toml:"store_version"`
	StoreDir     string `toml:"store_dir"`  // Empty = XDG config home
	UsePortal    bool   `toml:"use_portal"` // Pick the fallback theme from the desktop portal
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Theme: ThemeConfig{
			StoreName:    DefaultStoreName,
			StoreVersion: DefaultStoreVersion,
			StoreDir:     "",
			UsePortal:    true,
		},
	}
}

// ConfigHome returns XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigHome() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return configHome
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigHome(), "panelkit", "panelkit.toml")
}

// ThemeStoreDir returns the root directory of the theme store.
func (c *Config) ThemeStoreDir() string {
	if c.Theme.StoreDir != "" {
		return expandPath(c.Theme.StoreDir)
	}
	return ConfigHome()
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Theme.StoreName == "" {
		return errors.New("theme.store_name must not be empty")
	}
	if strings.ContainsRune(c.Theme.StoreName, filepath.Separator) {
		return fmt.Errorf("theme.store_name %q must not contain a path separator", c.Theme.StoreName)
	}
	if c.Theme.StoreVersion == 0 {
		return errors.New("theme.store_version must be at least 1")
	}
	return nil
}

// ParseLogLevel converts a level name into a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", level)
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
