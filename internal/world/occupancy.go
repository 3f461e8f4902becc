package world

import "github.com/vovakirdan/tilequest/internal/core"

// OccupantKind says what, if anything, sits on a coordinate.
type OccupantKind uint8

const (
	OccupantNone OccupantKind = iota
	OccupantMovable
	OccupantImmovable
)

// String returns the occupant kind name.
func (k OccupantKind) String() string {
	switch k {
	case OccupantNone:
		return "None"
	case OccupantMovable:
		return "Movable"
	case OccupantImmovable:
		return "Immovable"
	default:
		return "Unknown"
	}
}

// Occupant is the result of an occupancy query. ID is zero for OccupantNone.
type Occupant struct {
	Kind OccupantKind
	ID   EntityID
}

// OccupancyIndex maps coordinates to the walls and movables standing on them.
// It is a snapshot: build one per tick and drop it afterwards.
type OccupancyIndex struct {
	immovable map[core.Coord]EntityID
	movable   map[core.Coord]EntityID
}

// BuildOccupancy indexes every Wall and Movable in the registry.
// If two entities of the same class share a coordinate the earliest spawned wins.
func BuildOccupancy(r *Registry) OccupancyIndex {
	idx := OccupancyIndex{
		immovable: make(map[core.Coord]EntityID),
		movable:   make(map[core.Coord]EntityID),
	}
	for _, id := range r.Tags.entities {
		var dst map[core.Coord]EntityID
		switch r.Tags.values[id] {
		case TagWall:
			dst = idx.immovable
		case TagMovable:
			dst = idx.movable
		default:
			continue
		}
		pos, ok := r.Positions.Get(id)
		if !ok {
			continue
		}
		if _, taken := dst[pos]; !taken {
			dst[pos] = id
		}
	}
	return idx
}

// Movable returns the movable entity at c.
func (idx OccupancyIndex) Movable(c core.Coord) (EntityID, bool) {
	id, ok := idx.movable[c]
	return id, ok
}

// Immovable returns the wall at c.
func (idx OccupancyIndex) Immovable(c core.Coord) (EntityID, bool) {
	id, ok := idx.immovable[c]
	return id, ok
}

// Query reports the occupant of c. Walls take precedence over movables.
func (idx OccupancyIndex) Query(c core.Coord) Occupant {
	if id, ok := idx.immovable[c]; ok {
		return Occupant{Kind: OccupantImmovable, ID: id}
	}
	if id, ok := idx.movable[c]; ok {
		return Occupant{Kind: OccupantMovable, ID: id}
	}
	return Occupant{Kind: OccupantNone}
}

// Len returns the number of indexed walls and movables.
func (idx OccupancyIndex) Len() (immovable, movable int) {
	return len(idx.immovable), len(idx.movable)
}
