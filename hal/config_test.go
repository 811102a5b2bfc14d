package hal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ember.toml")
	if err := os.WriteFile(path, []byte("[host]\nheadless = true\nticks = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.Headless || cfg.Ticks != 5 {
		t.Fatalf("cfg = %+v, want headless with 5 ticks", cfg)
	}
	if cfg.Hz != 60 || cfg.Scale != 2 {
		t.Fatalf("defaults hz=%d scale=%d, want 60 and 2", cfg.Hz, cfg.Scale)
	}
}

func TestLoadConfigRejectsBadHz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ember.toml")
	if err := os.WriteFile(path, []byte("[host]\nhz = 5000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() error = nil, want validation error")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("LoadConfig() error = nil, want read error")
	}
}
