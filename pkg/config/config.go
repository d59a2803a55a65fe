// Package config handles loading and saving polarcraft configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/polarcraft/config.yaml
//   - State:   ~/.local/state/polarcraft/ (view state cache)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultView string  `yaml:"default_view,omitempty"` // course, demos, timeline, graph
	SplitRatio  float64 `yaml:"split_ratio,omitempty"`  // navigator/timeline split (0.2-0.8)
	ShowCounts  *bool   `yaml:"show_counts,omitempty"`  // event/demo count badges in the tree
}

// ExportConfig holds default export settings.
type ExportConfig struct {
	Format string `yaml:"format,omitempty"` // svg or png
	Dir    string `yaml:"dir,omitempty"`    // default output directory
}

// Config is the top-level configuration for polarcraft.
type Config struct {
	ContentDir    string       `yaml:"content_dir,omitempty"`
	FavoriteUnits []string     `yaml:"favorite_units,omitempty"`
	UI            UIConfig     `yaml:"ui,omitempty"`
	Export        ExportConfig `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	showCounts := true
	return Config{
		UI: UIConfig{
			DefaultView: "course",
			SplitRatio:  0.4,
			ShowCounts:  &showCounts,
		},
		Export: ExportConfig{
			Format: "svg",
		},
	}
}

// ConfigDir returns the XDG config directory for polarcraft.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "polarcraft")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "polarcraft")
}

// StateDir returns the XDG state directory for polarcraft.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "polarcraft")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "polarcraft")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ContentDir = expandHome(cfg.ContentDir)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// IsFavoriteUnit reports whether the unit id is marked as a favorite.
func (c Config) IsFavoriteUnit(id string) bool {
	for _, fav := range c.FavoriteUnits {
		if strings.EqualFold(fav, id) {
			return true
		}
	}
	return false
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
