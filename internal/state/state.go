// Package state wires the configuration, the library store, and its
// watcher into the single value the commands and the TUI share.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"stacks/internal/config"
	"stacks/internal/store"
)

// State aggregates everything a command needs.
type State struct {
	Config  *config.Config
	Store   *store.FileStore
	Watcher *store.Watcher
	Home    string
}

// New loads the configuration and opens the library it points at.
func New() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Library), 0o755); err != nil {
		return nil, fmt.Errorf("create library directory: %w", err)
	}

	st, err := store.Open(cfg.Library)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}

	watcher, err := store.NewWatcher(cfg.Library)
	if err != nil {
		return nil, fmt.Errorf("watch library: %w", err)
	}

	return &State{
		Config:  cfg,
		Store:   st,
		Watcher: watcher,
		Home:    home,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// LoadConfig primes viper with the config location for flag/env
// overrides and loads the yaml configuration.
func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + config.ConfigDir)
	viper.SetConfigName(config.ConfigFile)
	viper.SetConfigType(config.ConfigType)
	viper.ReadInConfig()

	if err := config.EnsureExists(home); err != nil {
		return nil, err
	}

	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}

	// Flag and environment overrides land in viper first.
	if lib := viper.GetString("library"); lib != "" {
		cfg.Library = lib
	}
	return cfg, nil
}

// UseLibrary points the state at a different library file, replacing
// the open store and its watcher.
func (s *State) UseLibrary(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create library directory: %w", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}

	watcher, err := store.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("watch library: %w", err)
	}

	if s.Watcher != nil {
		s.Watcher.Close()
	}
	s.Store = st
	s.Watcher = watcher
	s.Config.Library = path
	return nil
}

// Close releases the watcher.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
