// Package config holds the editor settings read from editor.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HistorySize int          `yaml:"history_size"`
	TileSize    int          `yaml:"tile_size"`
	MapsDir     string       `yaml:"maps_dir"`
	RulesDir    string       `yaml:"rules_dir"`
	WatchRules  bool         `yaml:"watch_rules"`
	Window      WindowConfig `yaml:"window"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func Default() Config {
	return Config{
		HistorySize: 50,
		TileSize:    32,
		MapsDir:     "maps",
		RulesDir:    "rules",
		WatchRules:  true,
		Window:      WindowConfig{Width: 1600, Height: 900},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HistorySize < 2 {
		return fmt.Errorf("history_size must be at least 2, got %d", c.HistorySize)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %d", c.TileSize)
	}
	if c.MapsDir == "" {
		return errors.New("maps_dir must not be empty")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d is invalid", c.Window.Width, c.Window.Height)
	}
	return nil
}
