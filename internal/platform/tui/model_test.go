package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/level"
	"github.com/vovakirdan/tilequest/internal/sim"
	"github.com/vovakirdan/tilequest/internal/terrain"
)

type flatField struct{}

func (flatField) Eval2(_, _ float64) float64 { return -1 }

func newTestModel(t *testing.T) (Model, *level.Assets) {
	t.Helper()
	cfg := config.Default()
	cfg.World.Seed = 1234
	assets := level.NewAssets(level.NewDirLoader(""), nil)
	w := sim.New(cfg, assets, sim.WithTerrainOptions(terrain.WithField(flatField{})))
	rt := core.RuntimeConfig{ScreenW: 21, ScreenH: 13, TickRate: 60}
	return NewModel(w, nil, nil, rt, "tester"), assets
}

func tick(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	next, _ := m.Update(TickMsg(at))
	return next.(Model)
}

func TestModelActivatesAndMoves(t *testing.T) {
	m, assets := newTestModel(t)
	now := time.Unix(0, 0)

	for i := 0; i < 5 && !m.world.IsReady(); i++ {
		now = now.Add(time.Second / 60)
		m = tick(t, m, now)
		assets.Wait()
	}
	if !m.world.IsReady() {
		t.Fatalf("level never became active: %+v", m.world.Gate())
	}

	view := m.View()
	if !strings.Contains(view, "@") || !strings.Contains(view, "level 0") {
		t.Errorf("view missing player or HUD:\n%s", view)
	}

	// Level 0 has a movable at (2,0): two steps right push it to (3,0).
	for i := 0; i < 2; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m = next.(Model)
		now = now.Add(time.Second / 60)
		m = tick(t, m, now)
	}
	if got := m.world.Player(); got != core.C(2, 0) {
		t.Errorf("player = %v, expected (2,0)", got)
	}
	if m.world.Stats().Pushes != 1 {
		t.Errorf("Pushes = %d, expected 1", m.world.Stats().Pushes)
	}

	// The frame is cleared after each tick.
	m = tick(t, m, now.Add(time.Second/60))
	if got := m.world.Player(); got != core.C(2, 0) {
		t.Errorf("player moved without input: %v", got)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m = next.(Model)
	if !m.help.ShowAll {
		t.Error("? should expand the help view")
	}
}

func TestDrawWorldCentersOnCamera(t *testing.T) {
	s := core.NewScreen(5, 5)
	snap := sim.Snapshot{
		Player:   core.C(10, 10),
		Walls:    []core.Coord{core.C(10, 11)},
		Movables: []core.Coord{core.C(11, 10)},
	}
	snap.Camera.X, snap.Camera.Y = 20, 20

	DrawWorld(s, snap, 2)

	want := ".....\n..#..\n..@o.\n.....\n....."
	if got := s.String(); got != want {
		t.Errorf("screen =\n%s\nexpected\n%s", got, want)
	}
	if !strings.Contains(RenderScreen(s), "@") {
		t.Error("rendered screen lost the player")
	}
}
