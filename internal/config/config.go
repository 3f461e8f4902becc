// Package config provides YAML-based configuration for the simulation and
// its terminal drivers.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/terrain"
)

// Config is the complete runtime configuration.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Terrain TerrainConfig `yaml:"terrain"`
	Camera  CameraConfig  `yaml:"camera"`
	Levels  LevelsConfig  `yaml:"levels"`
}

// WorldConfig defines the simulation clock and spawn point.
type WorldConfig struct {
	Spawn    Point  `yaml:"spawn"`
	TickRate int    `yaml:"tick_rate"` // Simulation ticks per second
	Seed     uint32 `yaml:"seed"`      // 0 draws a random seed on first generation
}

// Point is a grid coordinate in YAML form.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Coord converts p to a grid coordinate.
func (p Point) Coord() core.Coord {
	return core.C(p.X, p.Y)
}

// TerrainConfig defines the chunk layout and wall rule.
type TerrainConfig struct {
	ChunkSize  int     `yaml:"chunk_size"`
	ChunkMin   int     `yaml:"chunk_min"`
	ChunkMax   int     `yaml:"chunk_max"`
	NoiseScale float64 `yaml:"noise_scale"`
	Amplitude  float64 `yaml:"amplitude"`
	Offset     float64 `yaml:"offset"`
	Threshold  float64 `yaml:"threshold"`
	MaxLevels  int     `yaml:"max_levels"`
}

// CameraConfig defines camera smoothing.
type CameraConfig struct {
	K        float64 `yaml:"k"`         // Exponential decay constant
	TileSize float64 `yaml:"tile_size"` // Render units per tile
}

// LevelsConfig defines where level files come from.
type LevelsConfig struct {
	Dir     string `yaml:"dir"`     // Empty selects the built-in levels
	Initial int    `yaml:"initial"` // Level requested at startup
}

// TerrainParams converts the terrain section into generator parameters.
func (c Config) TerrainParams() terrain.Params {
	return terrain.Params{
		ChunkSize:  c.Terrain.ChunkSize,
		ChunkMin:   c.Terrain.ChunkMin,
		ChunkMax:   c.Terrain.ChunkMax,
		NoiseScale: c.Terrain.NoiseScale,
		Amplitude:  c.Terrain.Amplitude,
		Offset:     c.Terrain.Offset,
		Threshold:  c.Terrain.Threshold,
		Spawn:      c.World.Spawn.Coord(),
		MaxLevels:  c.Terrain.MaxLevels,
	}
}

// Validate reports the first setting that cannot drive a simulation.
func (c Config) Validate() error {
	if c.World.TickRate <= 0 {
		return fmt.Errorf("config: tick rate must be positive, got %d", c.World.TickRate)
	}
	if c.Camera.TileSize <= 0 {
		return fmt.Errorf("config: camera tile size must be positive, got %v", c.Camera.TileSize)
	}
	if c.Camera.K < 0 {
		return fmt.Errorf("config: camera k must not be negative, got %v", c.Camera.K)
	}
	if err := c.TerrainParams().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Levels.Initial < 0 || c.Levels.Initial >= c.Terrain.MaxLevels {
		return errors.New("config: initial level outside [0, max_levels)")
	}
	return nil
}
