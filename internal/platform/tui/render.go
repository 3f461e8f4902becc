package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/sim"
)

// glyphStyles maps screen glyphs to lipgloss styles.
var glyphStyles = map[core.Glyph]lipgloss.Style{
	core.GlyphEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	core.GlyphWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.GlyphMovable: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.GlyphPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
}

var (
	hudStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// CameraTile returns the tile the camera's rendered position falls on.
func CameraTile(snap sim.Snapshot, tileSize float64) core.Coord {
	if tileSize <= 0 {
		tileSize = 1
	}
	return core.C(
		int(math.Round(snap.Camera.X/tileSize)),
		int(math.Round(snap.Camera.Y/tileSize)),
	)
}

// DrawWorld draws a snapshot onto s, centered on the camera.
func DrawWorld(s *core.Screen, snap sim.Snapshot, tileSize float64) {
	s.CenterOn(CameraTile(snap, tileSize))
	for _, c := range snap.Walls {
		s.Plot(c, core.GlyphWall)
	}
	for _, c := range snap.Movables {
		s.Plot(c, core.GlyphMovable)
	}
	s.Plot(snap.Player, core.GlyphPlayer)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same glyph to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.Get(x, y)

			var run strings.Builder
			for x < s.Width() && s.Get(x, y) == start {
				run.WriteRune(start.Rune())
				x++
			}

			style, ok := glyphStyles[start]
			if !ok {
				style = glyphStyles[core.GlyphEmpty]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
