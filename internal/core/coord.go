// Package core provides the fundamental value types shared by the simulation:
// grid coordinates, directions and per-tick input frames.
// It has no dependencies so every other package can build on it.
package core

import "fmt"

// Coord is an integer lattice position, the only position type game logic uses.
// World space is y-up: Up increases Y, Down decreases it.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Scale multiplies both components by n.
func (c Coord) Scale(n int) Coord {
	return Coord{X: c.X * n, Y: c.Y * n}
}

// Step returns the neighbouring coordinate in the given direction.
func (c Coord) Step(d Dir) Coord {
	return c.Add(d.Delta())
}

// Less orders coordinates by row, then column. Used to sort placements.
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// Dir is one of the four movement directions.
type Dir uint8

const (
	DirLeft Dir = iota
	DirRight
	DirDown
	DirUp
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirUp:
		return "Up"
	default:
		return "Unknown"
	}
}

// Delta returns the unit vector for one step in this direction.
func (d Dir) Delta() Coord {
	switch d {
	case DirLeft:
		return Coord{X: -1}
	case DirRight:
		return Coord{X: 1}
	case DirDown:
		return Coord{Y: -1}
	case DirUp:
		return Coord{Y: 1}
	default:
		return Coord{}
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirUp:
		return DirDown
	default:
		return d
	}
}
