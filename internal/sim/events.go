package sim

import (
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/world"
)

// EventKind says what happened to an entity.
type EventKind uint8

const (
	EventSpawned EventKind = iota
	EventMoved
	EventDespawned
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "Spawned"
	case EventMoved:
		return "Moved"
	case EventDespawned:
		return "Despawned"
	default:
		return "Unknown"
	}
}

// Event tells renderers that an entity appeared, moved or went away.
// Coord is the entity's coordinate after the change, or its last coordinate
// for EventDespawned.
type Event struct {
	Kind   EventKind
	Entity world.EntityID
	Tag    world.Tag
	Coord  core.Coord
}

// Stats counts what happened during a session.
type Stats struct {
	Ticks   uint64
	Moves   uint64 // Ticks on which at least one player moved
	Pushes  uint64 // Movables shifted by players
	Blocked uint64 // Ticks on which every push chain hit a wall
	Levels  uint64 // Levels activated
}

// GenerationRecord describes one level build.
type GenerationRecord struct {
	Seed     uint32
	Level    int
	Walls    int
	Movables int
}

// GenerationRecorder receives a record after every successful level build.
type GenerationRecorder interface {
	SaveGeneration(rec GenerationRecord) error
}
