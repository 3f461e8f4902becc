// Package tui runs tilequest in a terminal: the Bubble Tea loop driving a
// simulation, the level picker, the history browser, and SSH hosting.
package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/level"
	"github.com/vovakirdan/tilequest/internal/sim"
	"github.com/vovakirdan/tilequest/internal/storage"
)

// hudHeight is the number of rows reserved below the viewport.
const hudHeight = 2

// TickMsg triggers one simulation step.
type TickMsg time.Time

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model driving one simulation.
type Model struct {
	world    *sim.World
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	username string

	frame    core.InputFrame
	keys     KeyMap
	help     help.Model
	last     sim.StepResult
	lastTick time.Time
	started  time.Time

	err      error
	quitting bool
	saved    bool // Whether the session has been saved
}

// NewModel creates a Bubble Tea model for w. store and logger may be nil.
func NewModel(w *sim.World, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, username string) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		world:    w,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-hudHeight, 1)),
		store:    store,
		logger:   logger,
		config:   cfg,
		username: username,
		frame:    core.NewInputFrame(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		started:  time.Now(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-hudHeight, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records the key's action on the pending input frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.saveSession()
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.frame.Set(action)
	}
	return m, nil
}

// handleTick advances the simulation by one tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := 1 / float64(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	res, err := m.world.Step(context.Background(), m.frame, dt)
	m.frame.Clear()
	if err != nil {
		m.logger.Error("simulation stopped", "error", err)
		m.err = err
		m.quitting = true
		m.saveSession()
		return m, tea.Quit
	}
	m.last = res

	return m, tickCmd(m.config.TickRate)
}

// saveSession stores the session stats once.
func (m *Model) saveSession() {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true

	stats := m.world.Stats()
	snap := m.world.Snapshot()
	_, err := m.store.SaveSession(storage.SessionRecord{
		Username:     m.username,
		Seed:         snap.Seed,
		Moves:        stats.Moves,
		Pushes:       stats.Pushes,
		Blocked:      stats.Blocked,
		Levels:       stats.Levels,
		DurationSecs: int(time.Since(m.started).Seconds()),
	})
	if err != nil {
		m.logger.Warn("could not save session", "error", err)
	}
}

// Err returns the fatal simulation error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.world.Snapshot()
	DrawWorld(m.screen, snap, m.world.TileSize())

	return RenderScreen(m.screen) + "\n" + m.hud(snap) + "\n" + m.help.View(m.keys)
}

// hud renders the status line.
func (m Model) hud(snap sim.Snapshot) string {
	g := snap.Gate
	if g.Phase != level.PhaseActive {
		if g.Faulted {
			return errorStyle.Render(fmt.Sprintf("level %d is broken, staying on level %d", g.RequestedLevel, g.CurrentLevel))
		}
		return loadingStyle.Render(fmt.Sprintf("loading level %d… (%s)", g.RequestedLevel, g.Phase))
	}
	return hudStyle.Render(fmt.Sprintf("level %d  seed %d  moves %d  pushes %d  blocked %d",
		g.CurrentLevel, snap.Seed, snap.Stats.Moves, snap.Stats.Pushes, snap.Stats.Blocked))
}

// Run starts the Bubble Tea program for w and returns the simulation error
// that stopped it, if any.
func Run(w *sim.World, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(w, store, logger, cfg, "local")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
