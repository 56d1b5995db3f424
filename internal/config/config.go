package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yahya0347/BGR-Pro/internal/brush"
	"github.com/yahya0347/BGR-Pro/internal/history"
)

// Notify holds notification toggles.
type Notify struct {
	Remove bool `toml:"remove"`
	Export bool `toml:"export"`
	Copy   bool `toml:"copy"`
}

// Removal holds the background-removal service settings.
type Removal struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
}

// Editor holds the interactive editor defaults.
type Editor struct {
	BrushSize    int `toml:"brush_size"`
	HistoryLimit int `toml:"history_limit"`
}

// Config holds the application configuration.
type Config struct {
	SaveDir string  `toml:"save_dir"`
	Removal Removal `toml:"removal"`
	Editor  Editor  `toml:"editor"`
	Notify  Notify  `toml:"notify"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Editor: Editor{
			BrushSize:    30,
			HistoryLimit: history.DefaultMaxEntries,
		},
	}
}

// Normalize brings loaded values back into supported ranges. A config file
// with a wild brush size should degrade, not break the editor.
func (c *Config) Normalize() {
	c.Editor.BrushSize = brush.ClampDiameter(c.Editor.BrushSize)
	if c.Editor.HistoryLimit <= 0 {
		c.Editor.HistoryLimit = history.DefaultMaxEntries
	}
}

// Parse decodes TOML configuration text.
func Parse(data string) (*Config, error) {
	cfg := New()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// String implements fmt.Stringer and renders the configuration as TOML.
func (c *Config) String() string {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return ""
	}
	return sb.String()
}
