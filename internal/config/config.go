// Package config loads the kiosk settings from a TOML file. Keys missing
// from the file keep their defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/roach88/techbar/internal/ledger"
	"github.com/roach88/techbar/internal/observability"
	"github.com/roach88/techbar/internal/swipe"
)

// DefaultDatabase is the SQLite file orders persist to.
const DefaultDatabase = "techbar.db"

// Config is the resolved kiosk configuration.
type Config struct {
	// Database is the SQLite path. ":memory:" keeps nothing across runs.
	Database string
	// Catalog is the menu YAML path. Empty uses the embedded menu.
	Catalog    string
	LogLevel   string
	DateLayout string
	Swipe      SwipeConfig
}

// SwipeConfig tunes the navigation gestures.
type SwipeConfig struct {
	MinDistance float64
}

type fileConfig struct {
	Database   string    `toml:"database"`
	Catalog    string    `toml:"catalog"`
	LogLevel   string    `toml:"log_level"`
	DateLayout string    `toml:"date_layout"`
	Swipe      fileSwipe `toml:"swipe"`
}

type fileSwipe struct {
	MinDistance int `toml:"min_distance"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Database:   DefaultDatabase,
		LogLevel:   "info",
		DateLayout: ledger.DefaultDateLayout,
		Swipe:      SwipeConfig{MinDistance: swipe.DefaultMinDistance},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config: unknown keys: %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("database") {
		if db := strings.TrimSpace(raw.Database); db != "" {
			cfg.Database = db
		}
	}

	if meta.IsDefined("catalog") {
		cfg.Catalog = strings.TrimSpace(raw.Catalog)
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}

	if meta.IsDefined("date_layout") {
		if layout := raw.DateLayout; strings.TrimSpace(layout) != "" {
			cfg.DateLayout = layout
		}
	}

	if meta.IsDefined("swipe", "min_distance") {
		cfg.Swipe.MinDistance = float64(raw.Swipe.MinDistance)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be fixed by a default.
func (c Config) Validate() error {
	if _, err := observability.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Swipe.MinDistance <= 0 {
		return fmt.Errorf("swipe.min_distance: must be positive, got %v", c.Swipe.MinDistance)
	}
	return nil
}
