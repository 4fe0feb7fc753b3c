package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if cfg.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Theme)
	}
	if cfg.ChartWidth != 900 || cfg.ChartHeight != 600 {
		t.Errorf("chart size = %dx%d, want 900x600", cfg.ChartWidth, cfg.ChartHeight)
	}
	if Exists() {
		t.Error("Exists() = true before any Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Theme = "flexoki-light"
	cfg.DataDir = "/tmp/bling-data"
	cfg.FontPath = "/usr/share/fonts/test.ttf"
	cfg.ChartWidth = 1200

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoadCorruptFileDegradesToDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("theme = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
	if !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("error = %v, want parse context", err)
	}
	if cfg.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want default after parse failure", cfg.Theme)
	}
}

func TestReportsPathOverride(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ReportsPath("/data"); got != filepath.Join("/data", "reports") {
		t.Errorf("ReportsPath = %q, want data subdir", got)
	}

	cfg.ReportsDir = "/elsewhere/out"
	if got := cfg.ReportsPath("/data"); got != "/elsewhere/out" {
		t.Errorf("ReportsPath = %q, want override", got)
	}
}
