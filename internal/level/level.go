// Package level provides level data, its asynchronous loading, and the gate
// that decides when a requested level may be generated and activated.
package level

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
)

// Layer names every level must provide.
const (
	LayerEntities   = "Entities"
	LayerCollisions = "Collisions"
)

// Entity instance identifiers understood in the Entities layer.
const (
	InstancePlayer  = "Player"
	InstanceMovable = "Movable"
)

var (
	// ErrMissingLayer is a configuration error: loaded level data lacks a
	// required layer. The level is not retried until requested again.
	ErrMissingLayer = errors.New("level: required layer missing")

	// ErrInvariant marks corrupted level data with no recovery path.
	ErrInvariant = errors.New("level: invariant violated")
)

// Instance is a named entity placed in a layer.
type Instance struct {
	Identifier string
	Coord      core.Coord
}

// Layer is a named layer of a level: entity instances and occupied cells.
type Layer struct {
	Name      string
	Instances []Instance
	Cells     []core.Coord
}

// Level is resolved level data. The simulation treats it as opaque apart from
// its named layers.
type Level struct {
	Index    int
	Name     string
	Width    int
	Height   int
	Layers   []Layer
	FilePath string
}

// Layer returns the layer with the given name.
func (l *Level) Layer(name string) (Layer, bool) {
	for _, layer := range l.Layers {
		if layer.Name == name {
			return layer, true
		}
	}
	return Layer{}, false
}

// InstancesOf returns every instance in layer with the given identifier.
func (l Layer) InstancesOf(identifier string) []Instance {
	var out []Instance
	for _, in := range l.Instances {
		if in.Identifier == identifier {
			out = append(out, in)
		}
	}
	return out
}

// Validate checks that the level carries every required layer.
func (l *Level) Validate() error {
	for _, name := range []string{LayerEntities, LayerCollisions} {
		if _, ok := l.Layer(name); !ok {
			return fmt.Errorf("%w: %q in level %d", ErrMissingLayer, name, l.Index)
		}
	}
	return nil
}
