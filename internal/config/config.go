// Package config loads and persists the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Cache configuration
	Cache CacheConfig `toml:"cache"`

	// Scryfall client configuration
	Scryfall ScryfallConfig `toml:"scryfall"`

	// Scraping configuration
	Scrape ScrapeConfig `toml:"scrape"`

	// Export configuration
	Export ExportConfig `toml:"export"`
}

// CacheConfig contains local card cache settings.
type CacheConfig struct {
	Path           string `toml:"path"`            // SQLite database path; empty uses the default location
	StaleThreshold string `toml:"stale_threshold"` // How old cached cards may be (e.g. "168h")
	LookupEntries  int    `toml:"lookup_entries"`  // In-memory LRU size (0 = default)
}

// ScryfallConfig contains Scryfall API settings.
type ScryfallConfig struct {
	RequestTimeout string `toml:"request_timeout"` // HTTP timeout (e.g. "30s")
}

// ScrapeConfig contains batch scraping settings.
type ScrapeConfig struct {
	RequestTimeout  string `toml:"request_timeout"`  // HTTP timeout per page
	SuppressInvalid bool   `toml:"suppress_invalid"` // Log and skip invalid decks instead of failing
}

// ExportConfig contains deck export settings.
type ExportConfig struct {
	OutputDir string `toml:"output_dir"` // Directory for exported deck files
	Format    string `toml:"format"`     // Default export format: "arena", "forge", or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Path:           "",
			StaleThreshold: "168h",
			LookupEntries:  0,
		},
		Scryfall: ScryfallConfig{
			RequestTimeout: "30s",
		},
		Scrape: ScrapeConfig{
			RequestTimeout:  "30s",
			SuppressInvalid: true,
		},
		Export: ExportConfig{
			OutputDir: ".",
			Format:    "arena",
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".deckhaven")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// DatabasePath resolves the card cache location, falling back to the config
// directory when unset.
func (c *Config) DatabasePath() (string, error) {
	if c.Cache.Path != "" {
		return c.Cache.Path, nil
	}
	path, err := configPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "cards.db"), nil
}

// Load loads the configuration from disk. Returns default config if the file
// doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"cache stale threshold":    c.Cache.StaleThreshold,
		"scryfall request timeout": c.Scryfall.RequestTimeout,
		"scrape request timeout":   c.Scrape.RequestTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, value, err)
		}
	}

	switch c.Export.Format {
	case "arena", "forge", "json":
	default:
		return fmt.Errorf("invalid export format %q", c.Export.Format)
	}
	return nil
}
