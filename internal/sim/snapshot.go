package sim

import (
	"sort"

	"github.com/vovakirdan/tilequest/internal/camera"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/level"
	"github.com/vovakirdan/tilequest/internal/world"
)

// Snapshot captures the observable world state for rendering and tests.
type Snapshot struct {
	Player   core.Coord
	Anchor   core.Coord
	Camera   camera.Vec2
	Walls    []core.Coord
	Movables []core.Coord
	Gate     level.GateSnapshot
	Seed     uint32
	Seeded   bool
	Stats    Stats
}

// Snapshot returns the current state. Coordinate lists are sorted by row
// then column.
func (w *World) Snapshot() Snapshot {
	seed, seeded := uint32(0), w.gen.Seeded()
	if seeded {
		seed, _ = w.gen.Seed()
	}
	return Snapshot{
		Player:   w.Player(),
		Anchor:   w.Anchor(),
		Camera:   w.cam.Position(),
		Walls:    w.Walls(),
		Movables: w.Movables(),
		Gate:     w.gate.Snapshot(),
		Seed:     seed,
		Seeded:   seeded,
		Stats:    w.stats,
	}
}

// Walls returns every wall coordinate, sorted.
func (w *World) Walls() []core.Coord {
	return w.coordsOf(world.TagWall)
}

// Movables returns every movable coordinate, sorted.
func (w *World) Movables() []core.Coord {
	return w.coordsOf(world.TagMovable)
}

// Player returns the player's coordinate.
func (w *World) Player() core.Coord {
	c, _ := w.reg.Position(w.player)
	return c
}

// Anchor returns the camera anchor's coordinate.
func (w *World) Anchor() core.Coord {
	c, _ := w.reg.Position(w.anchor)
	return c
}

// Camera returns the camera's rendered position.
func (w *World) Camera() camera.Vec2 {
	return w.cam.Position()
}

// TileSize returns render units per tile.
func (w *World) TileSize() float64 {
	return w.cfg.Camera.TileSize
}

// Stats returns the session counters.
func (w *World) Stats() Stats {
	return w.stats
}

// Gate returns the level gate state.
func (w *World) Gate() level.GateSnapshot {
	return w.gate.Snapshot()
}

// Registry exposes the entity registry for drivers that bind sprites.
func (w *World) Registry() *world.Registry {
	return w.reg
}

func (w *World) coordsOf(tag world.Tag) []core.Coord {
	ids := w.reg.With(tag)
	out := make([]core.Coord, 0, len(ids))
	for _, id := range ids {
		if c, ok := w.reg.Position(id); ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}
