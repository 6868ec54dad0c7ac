// Package config loads lstime settings from TOML files. Later files win:
// the XDG config dir first, then ./config.toml for per-project overrides.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/lstime/lstime/internal/listing"
)

const appName = "lstime"

type Config struct {
	StartPath    string `koanf:"start_path"`    // empty means cwd
	SortBy       string `koanf:"sort_by"`       // modified | created | accessed | size | name
	Reverse      bool   `koanf:"reverse"`       // oldest first when set
	ShowHidden   bool   `koanf:"show_hidden"`
	Editor       string `koanf:"editor"`        // overrides $EDITOR
	PreviewRatio int    `koanf:"preview_ratio"` // preview width as percent of the terminal
}

// Load reads the config files. Missing files are fine; defaults apply.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		SortBy:       "modified",
		PreviewRatio: 50,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.StartPath != "" {
		cfg.StartPath = expandPath(cfg.StartPath)
	}
	if cfg.PreviewRatio < 20 {
		cfg.PreviewRatio = 20
	} else if cfg.PreviewRatio > 80 {
		cfg.PreviewRatio = 80
	}

	return cfg, nil
}

// ListingOptions translates the config into lister options.
func (c *Config) ListingOptions() listing.Options {
	return listing.Options{
		ShowHidden: c.ShowHidden,
		SortBy:     listing.ParseSortKey(c.SortBy),
		Reverse:    c.Reverse,
	}
}

func configPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
