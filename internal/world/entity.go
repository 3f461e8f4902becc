// Package world holds the entity registry and the systems that operate on it:
// the per-tick occupancy index and the push-chain movement resolver.
// Systems are plain functions over the registry; nothing here is safe for
// concurrent mutation and nothing needs to be.
package world

import "github.com/vovakirdan/tilequest/internal/core"

// EntityID identifies an entity. IDs are never reused within a registry.
type EntityID uint64

// Tag classifies an entity. Every entity carries exactly one tag.
type Tag uint8

const (
	TagPlayer Tag = iota
	TagWall
	TagMovable
	TagCameraAnchor
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagPlayer:
		return "Player"
	case TagWall:
		return "Wall"
	case TagMovable:
		return "Movable"
	case TagCameraAnchor:
		return "CameraAnchor"
	default:
		return "Unknown"
	}
}

// Table is a typed component table. Iteration follows insertion order so
// systems see entities in spawn order regardless of map layout.
type Table[T any] struct {
	values   map[EntityID]T
	entities []EntityID
}

// NewTable creates an empty component table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		values:   make(map[EntityID]T),
		entities: make([]EntityID, 0, 64),
	}
}

// Set inserts or updates the component for an entity.
func (t *Table[T]) Set(e EntityID, v T) {
	if _, exists := t.values[e]; !exists {
		t.entities = append(t.entities, e)
	}
	t.values[e] = v
}

// Get returns the component for an entity.
func (t *Table[T]) Get(e EntityID) (T, bool) {
	v, ok := t.values[e]
	return v, ok
}

// Remove deletes the component for an entity, keeping the order of the rest.
func (t *Table[T]) Remove(e EntityID) {
	if _, exists := t.values[e]; !exists {
		return
	}
	delete(t.values, e)
	for i, id := range t.entities {
		if id == e {
			t.entities = append(t.entities[:i], t.entities[i+1:]...)
			break
		}
	}
}

// RemoveAll deletes the components of every listed entity and compacts the
// order once, keeping the order of the rest.
func (t *Table[T]) RemoveAll(ids []EntityID) {
	removed := 0
	for _, e := range ids {
		if _, exists := t.values[e]; exists {
			delete(t.values, e)
			removed++
		}
	}
	if removed == 0 {
		return
	}
	kept := t.entities[:0]
	for _, id := range t.entities {
		if _, exists := t.values[id]; exists {
			kept = append(kept, id)
		}
	}
	t.entities = kept
}

// Entities returns a copy of the entity list in insertion order.
func (t *Table[T]) Entities() []EntityID {
	out := make([]EntityID, len(t.entities))
	copy(out, t.entities)
	return out
}

// Len returns the number of entities in the table.
func (t *Table[T]) Len() int {
	return len(t.entities)
}

// Registry owns all entities and their component tables.
type Registry struct {
	nextID    EntityID
	Positions *Table[core.Coord]
	Tags      *Table[Tag]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nextID:    1,
		Positions: NewTable[core.Coord](),
		Tags:      NewTable[Tag](),
	}
}

// Spawn creates an entity with the given tag at pos.
func (r *Registry) Spawn(tag Tag, pos core.Coord) EntityID {
	id := r.nextID
	r.nextID++
	r.Tags.Set(id, tag)
	r.Positions.Set(id, pos)
	return id
}

// Despawn removes an entity from every table.
func (r *Registry) Despawn(id EntityID) {
	r.Tags.Remove(id)
	r.Positions.Remove(id)
}

// DespawnAll removes every listed entity from every table.
func (r *Registry) DespawnAll(ids []EntityID) {
	r.Tags.RemoveAll(ids)
	r.Positions.RemoveAll(ids)
}

// Position returns an entity's grid coordinate.
func (r *Registry) Position(id EntityID) (core.Coord, bool) {
	return r.Positions.Get(id)
}

// Tag returns an entity's tag.
func (r *Registry) Tag(id EntityID) (Tag, bool) {
	return r.Tags.Get(id)
}

// With returns every entity carrying tag, in spawn order.
func (r *Registry) With(tag Tag) []EntityID {
	var out []EntityID
	for _, id := range r.Tags.entities {
		if r.Tags.values[id] == tag {
			out = append(out, id)
		}
	}
	return out
}

// Count returns the number of entities carrying tag.
func (r *Registry) Count(tag Tag) int {
	n := 0
	for _, id := range r.Tags.entities {
		if r.Tags.values[id] == tag {
			n++
		}
	}
	return n
}

// Len returns the total number of live entities.
func (r *Registry) Len() int {
	return r.Tags.Len()
}
