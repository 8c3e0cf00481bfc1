package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Database != DefaultDatabase {
		t.Fatalf("unexpected database: %q", cfg.Database)
	}
	if cfg.Catalog != "" {
		t.Fatalf("expected embedded catalog, got %q", cfg.Catalog)
	}
	if cfg.DateLayout != "02/01/2006, 15:04:05" {
		t.Fatalf("unexpected date layout: %q", cfg.DateLayout)
	}
	if cfg.Swipe.MinDistance != 100 {
		t.Fatalf("unexpected min distance: %v", cfg.Swipe.MinDistance)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "kiosk.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Database != "/var/lib/techbar/orders.db" {
		t.Fatalf("unexpected database: %q", cfg.Database)
	}
	if cfg.Catalog != "menus/noche.yaml" {
		t.Fatalf("unexpected catalog: %q", cfg.Catalog)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
	if cfg.DateLayout != "2006-01-02 15:04" {
		t.Fatalf("unexpected date layout: %q", cfg.DateLayout)
	}
	if cfg.Swipe.MinDistance != 140 {
		t.Fatalf("unexpected min distance: %v", cfg.Swipe.MinDistance)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "partial.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := Default()
	want.LogLevel = "warn"
	if cfg != want {
		t.Fatalf("unexpected config:\n got %+v\nwant %+v", cfg, want)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "databse = \"x.db\"\n"},
		{"bad level", "log_level = \"loud\"\n"},
		{"zero distance", "[swipe]\nmin_distance = 0\n"},
		{"syntax", "database = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "techbar.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error for %q", tt.body)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
