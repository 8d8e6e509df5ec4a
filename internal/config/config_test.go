package config

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "bad stale threshold",
			mutate:  func(c *Config) { c.Cache.StaleThreshold = "a week" },
			wantErr: true,
		},
		{
			name:    "bad scryfall timeout",
			mutate:  func(c *Config) { c.Scryfall.RequestTimeout = "" },
			wantErr: true,
		},
		{
			name:    "bad export format",
			mutate:  func(c *Config) { c.Export.Format = "csv" },
			wantErr: true,
		},
		{
			name:   "forge format",
			mutate: func(c *Config) { c.Export.Format = "forge" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_TOMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Path = "/tmp/cards.db"
	cfg.Cache.LookupEntries = 1024
	cfg.Scrape.SuppressInvalid = false

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("toml.Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "[cache]") {
		t.Errorf("marshalled config missing [cache] table:\n%s", data)
	}

	var loaded Config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("toml.Unmarshal() error = %v", err)
	}
	if loaded.Cache.Path != "/tmp/cards.db" {
		t.Errorf("Cache.Path = %q, want /tmp/cards.db", loaded.Cache.Path)
	}
	if loaded.Cache.LookupEntries != 1024 {
		t.Errorf("Cache.LookupEntries = %d, want 1024", loaded.Cache.LookupEntries)
	}
	if loaded.Scrape.SuppressInvalid {
		t.Error("Scrape.SuppressInvalid = true, want false preserved")
	}
}

func TestConfig_DatabasePathExplicit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Path = "/data/cards.db"

	path, err := cfg.DatabasePath()
	if err != nil {
		t.Fatalf("DatabasePath() error = %v", err)
	}
	if path != "/data/cards.db" {
		t.Errorf("DatabasePath() = %q, want the explicit path", path)
	}
}
