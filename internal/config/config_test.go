package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OCharnyshevich/mapcache/internal/mapcache"
	"github.com/OCharnyshevich/mapcache/internal/render"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadMissingFileKeepsConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := Load(filepath.Join(t.TempDir(), "none.yaml"), cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config changed (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapcache.yaml")
	data := `
seed: 42
generator: flat
hide_style: Ocean
workers: 2
visibility_limits:
  - {x0: -100, z0: -100, x1: 100, z1: 100}
region: {x0: 0, z0: 0, x1: 511, z1: 511}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 42 || cfg.Generator != "flat" || cfg.Workers != 2 {
		t.Errorf("seed=%d generator=%q workers=%d", cfg.Seed, cfg.Generator, cfg.Workers)
	}
	if cfg.TileSize != 8 {
		t.Errorf("TileSize = %d, want default 8", cfg.TileSize)
	}
	if style, err := cfg.HideStyle(); err != nil || style != mapcache.FillOcean {
		t.Errorf("HideStyle = %v, %v; want ocean", style, err)
	}
	want := []mapcache.VisibilityLimit{{X0: -100, Z0: -100, X1: 100, Z1: 100}}
	if diff := cmp.Diff(want, cfg.Limits()); diff != "" {
		t.Errorf("Limits mismatch (-want +got):\n%s", diff)
	}
	if cfg.Region != (render.Region{X1: 511, Z1: 511}) {
		t.Errorf("Region = %+v", cfg.Region)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("workers: [1,"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Load(path, DefaultConfig()); err == nil {
		t.Error("Load of invalid YAML should fail")
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Seed = -7
	cfg.VisibilityLimits = []Limit{{X0: 1, Z0: 2, X1: 3, Z1: 4}}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := &Config{}
	if err := Load(path, got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Workers = 16

	fromFile := DefaultConfig()
	fromFile.Seed = 1
	fromFile.Workers = 2
	fromFile.Generator = "flat"

	Merge(cfg, fromFile, map[string]bool{"seed": true})

	if cfg.Seed != 99 {
		t.Errorf("Seed = %d, want 99 (explicit flag)", cfg.Seed)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2 (from file)", cfg.Workers)
	}
	if cfg.Generator != "flat" {
		t.Errorf("Generator = %q, want flat", cfg.Generator)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"unknown generator", func(c *Config) { c.Generator = "amplified" }},
		{"bad hide style", func(c *Config) { c.HideStyleName = "lava" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"zero tile size", func(c *Config) { c.TileSize = 0 }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"negative preserved", func(c *Config) { c.PreservedChunks = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	if lvl, err := cfg.Level(); err != nil || lvl != slog.LevelDebug {
		t.Errorf("Level = %v, %v; want DEBUG", lvl, err)
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/srv/map"
	if got := cfg.DatabasePath(); got != filepath.Join("/srv/map", "world.sqlite") {
		t.Errorf("DatabasePath = %q", got)
	}
	cfg.Database = "/abs/world.sqlite"
	if got := cfg.DatabasePath(); got != "/abs/world.sqlite" {
		t.Errorf("DatabasePath = %q, want absolute path unchanged", got)
	}
}
