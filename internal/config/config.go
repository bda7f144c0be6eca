// Package config loads and persists the client configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the configuration directory under the user's home.
	ConfigDir  = "/.stacks"
	ConfigFile = "config"
	ConfigType = "yaml"
)

// PageSizes configures pagination per content type.
type PageSizes struct {
	Catalog    int `yaml:"catalog"    json:"catalog"`
	Notes      int `yaml:"notes"      json:"notes"`
	Highlights int `yaml:"highlights" json:"highlights"`
}

// Config is the persisted client configuration.
type Config struct {
	Library     string    `yaml:"library"      json:"library"`
	Locale      string    `yaml:"locale"       json:"locale"`
	PageSizes   PageSizes `yaml:"page_sizes"   json:"page_sizes"`
	DebounceMS  int       `yaml:"debounce_ms"  json:"debounce_ms"`
	UndoMS      int       `yaml:"undo_ms"      json:"undo_ms"`
	FolderBatch int       `yaml:"folder_batch" json:"folder_batch"`
	RecentLimit int       `yaml:"recent_limit" json:"recent_limit"`
	TopTags     int       `yaml:"top_tags"     json:"top_tags"`

	path string
}

// Default returns the configuration used when no file exists yet.
func Default(home string) *Config {
	return &Config{
		Library:     filepath.Join(home+ConfigDir, "library.yaml"),
		Locale:      "en",
		PageSizes:   PageSizes{Catalog: 24, Notes: 30, Highlights: 50},
		DebounceMS:  300,
		UndoMS:      5000,
		FolderBatch: 8,
		RecentLimit: 20,
		TopTags:     10,
		path:        configPath(home),
	}
}

func configPath(home string) string {
	return filepath.Join(home+ConfigDir, ConfigFile+"."+ConfigType)
}

// Load reads the configuration file under home, filling missing fields
// with defaults.
func Load(home string) (*Config, error) {
	cfg := Default(home)

	data, err := os.ReadFile(cfg.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize(home)
	return cfg, nil
}

func (cfg *Config) normalize(home string) {
	def := Default(home)
	if cfg.Library == "" {
		cfg.Library = def.Library
	}
	if cfg.Locale == "" {
		cfg.Locale = def.Locale
	}
	if cfg.PageSizes.Catalog < 1 {
		cfg.PageSizes.Catalog = def.PageSizes.Catalog
	}
	if cfg.PageSizes.Notes < 1 {
		cfg.PageSizes.Notes = def.PageSizes.Notes
	}
	if cfg.PageSizes.Highlights < 1 {
		cfg.PageSizes.Highlights = def.PageSizes.Highlights
	}
	if cfg.DebounceMS < 1 {
		cfg.DebounceMS = def.DebounceMS
	}
	if cfg.UndoMS < 1 {
		cfg.UndoMS = def.UndoMS
	}
	if cfg.FolderBatch < 1 {
		cfg.FolderBatch = def.FolderBatch
	}
	if cfg.RecentLimit < 1 {
		cfg.RecentLimit = def.RecentLimit
	}
	if cfg.TopTags < 1 {
		cfg.TopTags = def.TopTags
	}
	cfg.path = def.path
}

// Save writes the configuration back to its file.
func (cfg *Config) Save() error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(cfg.path, data, 0o644)
}

// EnsureExists writes the default configuration if none is present.
func EnsureExists(home string) error {
	path := configPath(home)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return Default(home).Save()
}

// Debounce returns the search debounce interval.
func (cfg *Config) Debounce() time.Duration {
	return time.Duration(cfg.DebounceMS) * time.Millisecond
}

// UndoWindow returns how long a move stays reversible.
func (cfg *Config) UndoWindow() time.Duration {
	return time.Duration(cfg.UndoMS) * time.Millisecond
}
