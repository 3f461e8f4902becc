package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tilequest/internal/terrain"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded config = %+v\nexpected %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDefaultTerrainParams(t *testing.T) {
	if got := Default().TerrainParams(); got != terrain.DefaultParams() {
		t.Errorf("TerrainParams = %+v, expected %+v", got, terrain.DefaultParams())
	}
}

func TestLoadCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "world:\n  seed: 1234\n  spawn: { x: 2, y: -1 }\ncamera:\n  k: 8\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.World.Seed != 1234 || cfg.Camera.K != 8 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.World.TickRate != 60 || cfg.Terrain.Threshold != 4.8 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if p := cfg.TerrainParams(); p.Spawn.X != 2 || p.Spawn.Y != -1 {
		t.Errorf("spawn = %v, expected (2,-1)", p.Spawn)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(bad, []byte("world: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(invalid, []byte("terrain:\n  chunk_size: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope.yaml")},
		{"malformed", bad},
		{"invalid", invalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".tilequest", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "world.yaml"), []byte("levels:\n  initial: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Levels.Initial != 2 {
		t.Errorf("Levels.Initial = %d, expected 2 from user config", cfg.Levels.Initial)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tick rate", func(c *Config) { c.World.TickRate = 0 }},
		{"tile size", func(c *Config) { c.Camera.TileSize = 0 }},
		{"negative k", func(c *Config) { c.Camera.K = -1 }},
		{"chunk size", func(c *Config) { c.Terrain.ChunkSize = -4 }},
		{"empty chunk range", func(c *Config) { c.Terrain.ChunkMax = c.Terrain.ChunkMin }},
		{"max levels", func(c *Config) { c.Terrain.MaxLevels = 0 }},
		{"initial level", func(c *Config) { c.Levels.Initial = 16 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
