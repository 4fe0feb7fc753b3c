// Package config holds bling's terminal-app configuration: theme, data and
// report locations, and report rendering knobs. Domain preferences (the
// currency symbol and default budget) are data, not configuration; they
// live with the record files and are managed by the ledger.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all bling configuration.
type Config struct {
	Theme      string `toml:"theme"`
	DataDir    string `toml:"data_dir"`
	ReportsDir string `toml:"reports_dir"`

	// FontPath points at a TTF used for PDF text. When empty the exporter
	// probes well-known system font locations; with no font found it falls
	// back to the PNG+CSV export mode.
	FontPath    string `toml:"font_path"`
	ChartWidth  int    `toml:"chart_width"`
	ChartHeight int    `toml:"chart_height"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:       "flexoki-dark",
		ChartWidth:  900,
		ChartHeight: 600,
	}
}

// pathOverride bypasses XDG resolution when set, e.g. via the --config
// flag. It applies to Load, Save and Exists alike for this process.
var pathOverride string

// SetPath overrides where the config file is read and written.
func SetPath(p string) { pathOverride = p }

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bling")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bling")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	if pathOverride != "" {
		return pathOverride
	}
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file. A missing file yields defaults silently; an
// unreadable or unparsable one yields defaults plus the error, so callers
// can warn without losing a working configuration.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := filepath.Dir(ConfigPath())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// ReportsPath resolves where report artifacts go: the configured override
// when set, otherwise a reports directory under the data directory.
func (c Config) ReportsPath(dataDir string) string {
	if c.ReportsDir != "" {
		return c.ReportsDir
	}
	return filepath.Join(dataDir, "reports")
}
