package level

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Phase is the gate's lifecycle phase.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAwaitingAssets
	PhaseGenerating
	PhaseActive
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseAwaitingAssets:
		return "AwaitingAssets"
	case PhaseGenerating:
		return "Generating"
	case PhaseActive:
		return "Active"
	default:
		return "Unknown"
	}
}

// Builder turns resolved level data into live entities. The gate only passes
// data that has passed Validate.
type Builder interface {
	BuildLevel(ctx context.Context, index int, data *Level) error
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithLogger sets the gate's logger.
func WithLogger(l *log.Logger) GateOption {
	return func(g *Gate) {
		g.logger = l
	}
}

// WithLevelLimit makes requests outside [0, n) an invariant violation.
func WithLevelLimit(n int) GateOption {
	return func(g *Gate) {
		g.levelLimit = n
	}
}

// WithInitialLevel sets the level requested before the first poll.
func WithInitialLevel(index int) GateOption {
	return func(g *Gate) {
		g.requestedLevel = index
	}
}

// Gate coordinates asset readiness with level generation.
//
// It is polled once per tick and makes at most one transition per poll:
//
//	Idle -> AwaitingAssets -> Generating -> Active
//
// A level is (re)generated while the requested level differs from the
// current one or no map has been loaded yet. Assets that fail or never
// finish loading hold the gate in AwaitingAssets indefinitely.
type Gate struct {
	src     Source
	builder Builder
	logger  *log.Logger

	phase            Phase
	currentLevel     int
	requestedLevel   int
	mapLoaded        bool
	collisionsLoaded bool

	pendingLevel int      // Level whose assets are being awaited
	handles      []Handle // Handles of pendingLevel
	faulted      bool     // requestedLevel hit a configuration error
	levelLimit   int      // 0 means unbounded
	generations  uint64
}

// NewGate creates a gate in the Idle phase.
func NewGate(src Source, b Builder, opts ...GateOption) *Gate {
	g := &Gate{
		src:     src,
		builder: b,
		phase:   PhaseIdle,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g
}

// RequestLevel asks for level index to become active. Requesting a level
// clears any configuration fault recorded for it.
func (g *Gate) RequestLevel(index int) {
	if index != g.requestedLevel {
		g.logger.Info("level requested", "level", index, "current", g.currentLevel)
	}
	g.requestedLevel = index
	g.faulted = false
}

// needsGeneration reports whether the requested level still has to be built.
func (g *Gate) needsGeneration() bool {
	return g.requestedLevel != g.currentLevel || !g.mapLoaded
}

// Poll advances the gate by at most one transition and reports whether one
// happened. It never blocks on assets. The returned error is fatal: the
// level data violated an invariant and there is no defined way to continue.
func (g *Gate) Poll(ctx context.Context) (bool, error) {
	if g.levelLimit > 0 && (g.requestedLevel < 0 || g.requestedLevel >= g.levelLimit) {
		return false, fmt.Errorf("%w: level %d not in [0, %d)", ErrInvariant, g.requestedLevel, g.levelLimit)
	}

	switch g.phase {
	case PhaseIdle, PhaseActive:
		if g.faulted {
			return false, nil
		}
		if !g.needsGeneration() {
			// Back on the loaded level after a fault.
			if g.phase == PhaseIdle {
				return g.settle(), nil
			}
			return false, nil
		}
		g.await(g.requestedLevel)
		return true, nil

	case PhaseAwaitingAssets:
		if !g.needsGeneration() {
			return g.settle(), nil
		}
		if g.pendingLevel != g.requestedLevel {
			g.await(g.requestedLevel)
			return true, nil
		}
		if !g.assetsReady() {
			return false, nil
		}
		g.enter(PhaseGenerating)
		return true, nil

	case PhaseGenerating:
		if !g.needsGeneration() {
			return g.settle(), nil
		}
		if g.pendingLevel != g.requestedLevel {
			g.await(g.requestedLevel)
			return true, nil
		}
		return true, g.generate(ctx)
	}
	return false, nil
}

// await enters AwaitingAssets for index and issues its asset requests.
func (g *Gate) await(index int) {
	g.pendingLevel = index
	g.handles = g.src.Request(index)
	g.enter(PhaseAwaitingAssets)
}

// settle leaves an abandoned transition once the request matches the
// current level again.
func (g *Gate) settle() bool {
	if g.mapLoaded {
		g.enter(PhaseActive)
	} else {
		g.enter(PhaseIdle)
	}
	return true
}

// assetsReady reports whether every pending handle is Loaded.
func (g *Gate) assetsReady() bool {
	for _, h := range g.handles {
		if state := g.src.State(h); state != AssetLoaded {
			g.logger.Debug("asset not ready", "level", g.pendingLevel, "handle", h, "state", state)
			return false
		}
	}
	return true
}

// generate builds the pending level and activates it.
func (g *Gate) generate(ctx context.Context) error {
	index := g.pendingLevel

	err := g.build(ctx, index)
	switch {
	case err == nil:
	case errors.Is(err, ErrMissingLayer):
		g.logger.Error("level configuration error", "level", index, "error", err)
		g.faulted = true
		g.enter(PhaseIdle)
		return nil
	default:
		g.faulted = true
		g.enter(PhaseIdle)
		return fmt.Errorf("level: generating level %d: %w", index, err)
	}

	g.currentLevel = index
	g.mapLoaded = true
	g.collisionsLoaded = true
	g.generations++
	g.enter(PhaseActive)
	g.logger.Info("level active", "level", index)
	return nil
}

func (g *Gate) build(ctx context.Context, index int) error {
	data, ok := g.src.Level(index)
	if !ok || data == nil {
		return fmt.Errorf("%w: no data for level %d", ErrMissingLayer, index)
	}
	if err := data.Validate(); err != nil {
		return err
	}
	return g.builder.BuildLevel(ctx, index, data)
}

func (g *Gate) enter(p Phase) {
	if p != g.phase {
		g.logger.Debug("gate transition", "from", g.phase, "to", p, "level", g.requestedLevel)
	}
	g.phase = p
}

// IsReady reports whether the requested level is active.
func (g *Gate) IsReady() bool {
	return g.phase == PhaseActive
}

// Phase returns the current phase.
func (g *Gate) Phase() Phase {
	return g.phase
}

// CurrentLevel returns the last activated level.
func (g *Gate) CurrentLevel() int {
	return g.currentLevel
}

// RequestedLevel returns the level most recently requested.
func (g *Gate) RequestedLevel() int {
	return g.requestedLevel
}

// GateSnapshot captures the gate state for tests and status displays.
type GateSnapshot struct {
	Phase            Phase
	CurrentLevel     int
	RequestedLevel   int
	MapLoaded        bool
	CollisionsLoaded bool
	Faulted          bool
	Generations      uint64
}

// Snapshot returns the current gate state.
func (g *Gate) Snapshot() GateSnapshot {
	return GateSnapshot{
		Phase:            g.phase,
		CurrentLevel:     g.currentLevel,
		RequestedLevel:   g.requestedLevel,
		MapLoaded:        g.mapLoaded,
		CollisionsLoaded: g.collisionsLoaded,
		Faulted:          g.faulted,
		Generations:      g.generations,
	}
}
