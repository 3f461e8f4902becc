package sim

import (
	"context"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/level"
	"github.com/vovakirdan/tilequest/internal/world"
)

// BuildLevel replaces the current level's walls and movables with those of
// data, which must already have passed Validate. Terrain walls come first,
// then the Collisions layer, then Movable instances from the Entities layer.
// A coordinate holding a player or the spawn point is never filled, and each
// coordinate is filled at most once. The first level built also places the
// player at its Player instance.
func (w *World) BuildLevel(ctx context.Context, index int, data *level.Level) error {
	placements, err := w.gen.Generate(ctx, index)
	if err != nil {
		return err
	}
	seed, _ := w.gen.Seed()

	w.despawnLevel()
	entities, _ := data.Layer(level.LayerEntities)
	w.placePlayer(index, entities)

	taken := make(map[core.Coord]bool, len(placements))
	taken[w.cfg.World.Spawn.Coord()] = true
	for _, id := range w.reg.With(world.TagPlayer) {
		c, _ := w.reg.Position(id)
		taken[c] = true
	}
	place := func(tag world.Tag, c core.Coord) bool {
		if taken[c] {
			return false
		}
		taken[c] = true
		w.spawn(tag, c)
		return true
	}

	walls := 0
	for _, p := range placements {
		if place(world.TagWall, p.Coord) {
			walls++
		}
	}
	collisions, _ := data.Layer(level.LayerCollisions)
	for _, c := range collisions.Cells {
		if place(world.TagWall, c) {
			walls++
		}
	}

	movables := 0
	for _, in := range entities.InstancesOf(level.InstanceMovable) {
		if place(world.TagMovable, in.Coord) {
			movables++
		}
	}

	w.stats.Levels++
	w.logger.Info("level built", "level", index, "seed", seed, "walls", walls, "movables", movables)

	if w.recorder != nil {
		rec := GenerationRecord{Seed: seed, Level: index, Walls: walls, Movables: movables}
		if err := w.recorder.SaveGeneration(rec); err != nil {
			w.logger.Warn("recording generation failed", "level", index, "error", err)
		}
	}
	return nil
}

// despawnLevel removes every wall and movable.
func (w *World) despawnLevel() {
	var ids []world.EntityID
	for _, tag := range []world.Tag{world.TagWall, world.TagMovable} {
		for _, id := range w.reg.With(tag) {
			w.emit(EventDespawned, id)
			ids = append(ids, id)
		}
	}
	w.reg.DespawnAll(ids)
}

// placePlayer moves the player and camera anchor onto the Player instance of
// the first level built. Later levels leave the player where it stands.
func (w *World) placePlayer(index int, entities level.Layer) {
	starts := entities.InstancesOf(level.InstancePlayer)
	if w.placed {
		if len(starts) > 0 {
			w.logger.Debug("level player start ignored", "level", index, "start", starts[0].Coord)
		}
		return
	}
	w.placed = true
	if len(starts) == 0 {
		return
	}

	start := starts[0].Coord
	if cur, _ := w.reg.Position(w.player); cur == start {
		return
	}
	w.reg.Positions.Set(w.player, start)
	w.reg.Positions.Set(w.anchor, start)
	w.emit(EventMoved, w.player)
	w.emit(EventMoved, w.anchor)
	w.cam.Snap(start)
	w.logger.Info("player placed at level start", "level", index, "start", start)
}

var _ level.Builder = (*World)(nil)
