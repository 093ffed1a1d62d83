// Package config loads openfiles settings from
// $XDG_CONFIG_HOME/openfiles/config.toml. Command-line flags override
// anything set here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/mj1618/openfiles/internal/tracker"
	"github.com/pelletier/go-toml/v2"
)

// RelPath is the config file location relative to the XDG config dirs.
const RelPath = "openfiles/config.toml"

// Config holds user settings.
type Config struct {
	Editor   EditorConfig       `toml:"editor"      yaml:"editor"             json:"editor"`
	Sort     tracker.SortPolicy `toml:"sort"        yaml:"sort"               json:"sort"`
	Interval int                `toml:"interval_ms" yaml:"interval_ms"        json:"interval_ms"` // refresh interval for watch and serve
	Format   string             `toml:"format"      yaml:"format"             json:"format"`      // yaml or json
	LogLevel string             `toml:"log_level"   yaml:"log_level"          json:"log_level"`
	Manifest string             `toml:"manifest"    yaml:"manifest,omitempty" json:"manifest,omitempty"` // read windows from this file instead of the window manager
}

// EditorConfig selects the application whose windows are tracked.
type EditorConfig struct {
	App   string `toml:"app"   yaml:"app"             json:"app"`
	Class string `toml:"class" yaml:"class,omitempty" json:"class,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor:   EditorConfig{App: "code"},
		Sort:     tracker.Recency,
		Interval: 1000,
		Format:   "yaml",
		LogLevel: "warn",
	}
}

// RefreshInterval returns Interval as a duration.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.Interval) * time.Millisecond
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval_ms must be positive, got %d", c.Interval)
	}
	switch c.Format {
	case "yaml", "json":
	default:
		return fmt.Errorf("unsupported format: %s (use yaml or json)", c.Format)
	}
	return nil
}

// Path returns the existing config file, or where a new one should go.
func Path() (string, error) {
	if p, err := xdg.SearchConfigFile(RelPath); err == nil {
		return p, nil
	}
	return filepath.Join(xdg.ConfigHome, RelPath), nil
}

// Load reads the config at path on top of the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Format = strings.ToLower(cfg.Format)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Write saves cfg to path with a short header, creating parent dirs.
func Write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# openfiles configuration\n")
	sb.WriteString("# sort: RECENCY, NAME_ASC or NAME_DESC\n")
	sb.WriteString("# Location: " + path + "\n\n")
	sb.Write(data)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
