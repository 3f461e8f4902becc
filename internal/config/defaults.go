package config

import (
	_ "embed"
)

//go:embed defaults/world.yaml
var defaultWorldYAML []byte

// Default returns the built-in configuration. It matches defaults/world.yaml.
func Default() Config {
	return Config{
		World: WorldConfig{
			Spawn:    Point{X: 0, Y: 0},
			TickRate: 60,
		},
		Terrain: TerrainConfig{
			ChunkSize:  16,
			ChunkMin:   -2,
			ChunkMax:   2,
			NoiseScale: 16,
			Amplitude:  16,
			Offset:     8,
			Threshold:  4.8,
			MaxLevels:  16,
		},
		Camera: CameraConfig{
			K:        5.0,
			TileSize: 1.0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWorldYAML
}
