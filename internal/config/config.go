package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/mapcache/internal/mapcache"
	"github.com/OCharnyshevich/mapcache/internal/render"
)

// Limit is a visibility rectangle in block coordinates.
type Limit struct {
	X0 int32 `yaml:"x0" json:"x0"`
	Z0 int32 `yaml:"z0" json:"z0"`
	X1 int32 `yaml:"x1" json:"x1"`
	Z1 int32 `yaml:"z1" json:"z1"`
}

// Config holds the renderer configuration.
type Config struct {
	DataDir          string        `yaml:"data_dir" json:"data_dir"`
	Database         string        `yaml:"database" json:"database"` // relative to DataDir
	Seed             int64         `yaml:"seed" json:"seed"`
	Generator        string        `yaml:"generator" json:"generator"` // "default" or "flat"
	LogLevel         string        `yaml:"log_level" json:"log_level"`
	HideStyleName    string        `yaml:"hide_style" json:"hide_style"` // "air", "stone" or "ocean"
	VisibilityLimits []Limit       `yaml:"visibility_limits" json:"visibility_limits"`
	Region           render.Region `yaml:"region" json:"region"`
	TileSize         int           `yaml:"tile_size" json:"tile_size"` // chunks per tile edge
	Workers          int           `yaml:"workers" json:"workers"`
	SaveTiles        bool          `yaml:"save_tiles" json:"save_tiles"`
	PreservedChunks  int           `yaml:"preserved_chunks" json:"preserved_chunks"` // 0 disables the preserved cache
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:         "./data",
		Database:        "world.sqlite",
		Generator:       "default",
		LogLevel:        "info",
		HideStyleName:   "air",
		Region:          render.Region{X0: -256, Z0: -256, X1: 255, Z1: 255},
		TileSize:        8,
		Workers:         4,
		SaveTiles:       true,
		PreservedChunks: 64,
	}
}

// Load reads a YAML file into cfg. If the file does not exist, cfg is unchanged.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["data"] {
		cfg.DataDir = fromFile.DataDir
	}
	if !explicitFlags["database"] {
		cfg.Database = fromFile.Database
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	if !explicitFlags["hide-style"] {
		cfg.HideStyleName = fromFile.HideStyleName
	}
	if !explicitFlags["tile-size"] {
		cfg.TileSize = fromFile.TileSize
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["save-tiles"] {
		cfg.SaveTiles = fromFile.SaveTiles
	}
	if !explicitFlags["preserved-chunks"] {
		cfg.PreservedChunks = fromFile.PreservedChunks
	}
	cfg.VisibilityLimits = fromFile.VisibilityLimits
	cfg.Region = fromFile.Region
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir is empty"))
	}
	if c.Database == "" {
		errs = append(errs, errors.New("database is empty"))
	}
	switch c.Generator {
	case "default", "flat":
	default:
		errs = append(errs, fmt.Errorf("unknown generator %q", c.Generator))
	}
	if _, err := c.HideStyle(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.TileSize < 1 {
		errs = append(errs, fmt.Errorf("tile_size %d, want at least 1", c.TileSize))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d, want at least 1", c.Workers))
	}
	if c.PreservedChunks < 0 {
		errs = append(errs, fmt.Errorf("preserved_chunks %d, want 0 or more", c.PreservedChunks))
	}
	return errors.Join(errs...)
}

// HideStyle parses HideStyleName.
func (c *Config) HideStyle() (mapcache.HiddenChunkStyle, error) {
	return mapcache.ParseHiddenChunkStyle(c.HideStyleName)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// Limits converts the configured visibility rectangles.
func (c *Config) Limits() []mapcache.VisibilityLimit {
	out := make([]mapcache.VisibilityLimit, 0, len(c.VisibilityLimits))
	for _, l := range c.VisibilityLimits {
		out = append(out, mapcache.VisibilityLimit{X0: l.X0, Z0: l.Z0, X1: l.X1, Z1: l.Z1})
	}
	return out
}

// DatabasePath returns the database location inside DataDir.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Database) {
		return c.Database
	}
	return filepath.Join(c.DataDir, c.Database)
}
