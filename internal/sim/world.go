// Package sim owns a running simulation: the entity registry, the terrain
// generator, the level gate and the camera, advanced one tick at a time.
package sim

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilequest/internal/camera"
	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/level"
	"github.com/vovakirdan/tilequest/internal/terrain"
	"github.com/vovakirdan/tilequest/internal/world"
)

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger shared by the world and its gate.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		w.logger = l
	}
}

// WithRecorder records every level build.
func WithRecorder(r GenerationRecorder) Option {
	return func(w *World) {
		w.recorder = r
	}
}

// WithTerrainOptions passes options through to the terrain generator.
func WithTerrainOptions(opts ...terrain.Option) Option {
	return func(w *World) {
		w.terrainOpts = append(w.terrainOpts, opts...)
	}
}

// World is the simulation context. It is not safe for concurrent use;
// drive it from a single goroutine.
type World struct {
	cfg      config.Config
	reg      *world.Registry
	gen      *terrain.Generator
	gate     *level.Gate
	cam      *camera.Follower
	logger   *log.Logger
	recorder GenerationRecorder

	terrainOpts []terrain.Option

	player world.EntityID
	anchor world.EntityID
	placed bool // Player placed from level data

	events []Event
	stats  Stats
}

// StepResult reports what one tick did.
type StepResult struct {
	Move   world.MoveResult
	Events []Event
	Phase  level.Phase
	Camera camera.Vec2
	Stats  Stats
}

// New creates a world with the player and camera anchor at the spawn point.
// No level is active until the gate has been polled through its phases.
func New(cfg config.Config, src level.Source, opts ...Option) *World {
	w := &World{
		cfg: cfg,
		reg: world.NewRegistry(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}

	genOpts := w.terrainOpts
	if cfg.World.Seed != 0 {
		genOpts = append([]terrain.Option{terrain.WithSeed(cfg.World.Seed)}, genOpts...)
	}
	w.gen = terrain.NewGenerator(cfg.TerrainParams(), genOpts...)

	spawn := cfg.World.Spawn.Coord()
	w.player = w.spawn(world.TagPlayer, spawn)
	w.anchor = w.spawn(world.TagCameraAnchor, spawn)

	w.cam = camera.NewFollower(cfg.Camera.K, cfg.Camera.TileSize)
	w.cam.Snap(spawn)

	w.gate = level.NewGate(src, w,
		level.WithLogger(w.logger),
		level.WithLevelLimit(cfg.Terrain.MaxLevels),
		level.WithInitialLevel(cfg.Levels.Initial),
	)
	return w
}

// RequestLevel asks for a level to become active.
func (w *World) RequestLevel(index int) {
	w.gate.RequestLevel(index)
}

// IsReady reports whether the requested level is active.
func (w *World) IsReady() bool {
	return w.gate.IsReady()
}

// AttemptMove resolves one movement pass from frame.
func (w *World) AttemptMove(frame core.InputFrame) world.MoveResult {
	res := world.AttemptMove(w.reg, frame)
	switch res.Outcome {
	case world.MoveMoved:
		w.stats.Moves++
		w.stats.Pushes += uint64(res.Pushed)
		for _, id := range res.Changed {
			w.emit(EventMoved, id)
		}
	case world.MoveBlocked:
		w.stats.Blocked++
	}
	return res
}

// QueryOccupant reports what stands on c.
func (w *World) QueryOccupant(c core.Coord) world.Occupant {
	return world.BuildOccupancy(w.reg).Query(c)
}

// Step advances one tick: level requests from frame, one gate poll, one
// movement pass and one camera update over dt seconds. A returned error is
// fatal for the simulation.
func (w *World) Step(ctx context.Context, frame core.InputFrame, dt float64) (StepResult, error) {
	w.stats.Ticks++

	switch {
	case frame.Has(core.ActionNextLevel):
		w.RequestLevel(min(w.gate.RequestedLevel()+1, w.cfg.Terrain.MaxLevels-1))
	case frame.Has(core.ActionPrevLevel):
		w.RequestLevel(max(w.gate.RequestedLevel()-1, 0))
	}

	if _, err := w.gate.Poll(ctx); err != nil {
		return StepResult{}, fmt.Errorf("sim: tick %d: %w", w.stats.Ticks, err)
	}

	move := w.AttemptMove(frame)

	anchor, _ := w.reg.Position(w.anchor)
	pos := w.cam.Update(anchor, dt)

	return StepResult{
		Move:   move,
		Events: w.drain(),
		Phase:  w.gate.Phase(),
		Camera: pos,
		Stats:  w.stats,
	}, nil
}

// spawn creates an entity and queues its event.
func (w *World) spawn(tag world.Tag, c core.Coord) world.EntityID {
	id := w.reg.Spawn(tag, c)
	w.events = append(w.events, Event{Kind: EventSpawned, Entity: id, Tag: tag, Coord: c})
	return id
}

// emit queues an event for id at its current coordinate.
func (w *World) emit(kind EventKind, id world.EntityID) {
	tag, _ := w.reg.Tag(id)
	c, _ := w.reg.Position(id)
	w.events = append(w.events, Event{Kind: kind, Entity: id, Tag: tag, Coord: c})
}

// drain returns and clears the queued events.
func (w *World) drain() []Event {
	out := w.events
	w.events = nil
	return out
}

// Events returns and clears events queued outside Step.
func (w *World) Events() []Event {
	return w.drain()
}
