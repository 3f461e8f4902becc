package core

import (
	"strings"
)

// Glyph is what a screen cell shows.
type Glyph uint8

const (
	GlyphEmpty Glyph = iota
	GlyphWall
	GlyphMovable
	GlyphPlayer
)

// Rune returns the plain-text character for the glyph.
func (g Glyph) Rune() rune {
	switch g {
	case GlyphWall:
		return '#'
	case GlyphMovable:
		return 'o'
	case GlyphPlayer:
		return '@'
	default:
		return '.'
	}
}

// Screen is a character buffer looking at a window of the world grid.
// World space is y-up while screen rows grow downwards, so the top row shows
// the highest world y.
type Screen struct {
	width  int
	height int
	origin Coord // World coordinate shown in the top-left cell
	cells  [][]Glyph
}

// NewScreen creates a screen buffer with the given dimensions, centered on
// the world origin.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.CenterOn(C(0, 0))
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Glyph, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Glyph, s.width)
	}
}

// Width returns the screen width in cells.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in cells.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions and clears it. The view stays
// centered on the same world coordinate.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	center := s.Center()
	s.width = max(width, 0)
	s.height = max(height, 0)
	s.allocate()
	s.CenterOn(center)
}

// CenterOn moves the view so c sits in the middle cell and clears it.
func (s *Screen) CenterOn(c Coord) {
	s.origin = C(c.X-s.width/2, c.Y+s.height/2)
	s.Clear()
}

// Center returns the world coordinate in the middle cell.
func (s *Screen) Center() Coord {
	return C(s.origin.X+s.width/2, s.origin.Y-s.height/2)
}

// Clear empties every cell.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = GlyphEmpty
		}
	}
}

// Cell returns the screen cell showing world coordinate c.
func (s *Screen) Cell(c Coord) (x, y int, ok bool) {
	x = c.X - s.origin.X
	y = s.origin.Y - c.Y
	ok = x >= 0 && x < s.width && y >= 0 && y < s.height
	return x, y, ok
}

// World returns the world coordinate shown in cell (x, y).
func (s *Screen) World(x, y int) Coord {
	return C(s.origin.X+x, s.origin.Y-y)
}

// Plot draws g at world coordinate c. Coordinates outside the view are
// ignored. A glyph never overwrites a higher one, so players stay visible.
func (s *Screen) Plot(c Coord, g Glyph) {
	x, y, ok := s.Cell(c)
	if !ok || s.cells[y][x] > g {
		return
	}
	s.cells[y][x] = g
}

// Get returns the glyph in cell (x, y). Out-of-bounds cells are empty.
func (s *Screen) Get(x, y int) Glyph {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return GlyphEmpty
	}
	return s.cells[y][x]
}

// String converts the screen buffer to plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, g := range s.cells[y] {
		sb.WriteRune(g.Rune())
	}
	return sb.String()
}
