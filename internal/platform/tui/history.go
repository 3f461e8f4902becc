package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilequest/internal/storage"
)

const maxHistoryRows = 100

// HistoryTab selects which history table is shown.
type HistoryTab int

const (
	TabGenerations HistoryTab = iota
	TabSessions
)

func (t HistoryTab) String() string {
	if t == TabSessions {
		return "Sessions"
	}
	return "Generations"
}

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Tab  key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Tab, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "switch table"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel browses recorded generations and sessions.
type HistoryModel struct {
	store    *storage.Store
	tab      HistoryTab
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	rows     int
	width    int
	height   int
	err      error
	quitting bool
}

// NewHistoryModel creates a history browser showing the generations tab.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

func (m *HistoryModel) columns() []table.Column {
	if m.tab == TabSessions {
		return []table.Column{
			{Title: "User", Width: 12},
			{Title: "Seed", Width: 10},
			{Title: "Moves", Width: 7},
			{Title: "Pushes", Width: 7},
			{Title: "Levels", Width: 7},
			{Title: "Date", Width: 14},
		}
	}
	return []table.Column{
		{Title: "Seed", Width: 10},
		{Title: "Level", Width: 6},
		{Title: "Walls", Width: 7},
		{Title: "Crates", Width: 7},
		{Title: "Date", Width: 14},
	}
}

// reload rebuilds the table for the current tab from storage.
func (m *HistoryModel) reload() {
	var rows []table.Row
	m.err = nil
	if m.store != nil {
		rows, m.err = m.loadRows()
	}
	m.rows = len(rows)

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	m.table = t
}

func (m *HistoryModel) loadRows() ([]table.Row, error) {
	if m.tab == TabSessions {
		sessions, err := m.store.RecentSessions(maxHistoryRows)
		if err != nil {
			return nil, err
		}
		rows := make([]table.Row, len(sessions))
		for i, s := range sessions {
			rows[i] = table.Row{
				s.Username,
				fmt.Sprintf("%d", s.Seed),
				fmt.Sprintf("%d", s.Moves),
				fmt.Sprintf("%d", s.Pushes),
				fmt.Sprintf("%d", s.Levels),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows, nil
	}

	gens, err := m.store.RecentGenerations(maxHistoryRows)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(gens))
	for i, g := range gens {
		rows[i] = table.Row{
			fmt.Sprintf("%d", g.Seed),
			fmt.Sprintf("%d", g.Level),
			fmt.Sprintf("%d", g.Walls),
			fmt.Sprintf("%d", g.Movables),
			g.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows, nil
}

// Tab returns the table currently shown.
func (m HistoryModel) Tab() HistoryTab {
	return m.tab
}

// Rows returns the number of rows in the current table.
func (m HistoryModel) Rows() int {
	return m.rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.tab = 1 - m.tab
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	b.WriteString(titleStyle.Render("HISTORY"))
	b.WriteString("\n\n")
	for _, t := range []HistoryTab{TabGenerations, TabSessions} {
		if t == m.tab {
			b.WriteString(activeTabStyle.Render(t.String()))
		} else {
			b.WriteString(tabStyle.Render(t.String()))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.rows == 0:
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(empty.Render("Nothing recorded yet.\nRun 'tilequest play' to explore a level!")))
	default:
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))

	return b.String()
}

// RunHistory runs the history browser until the user quits.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewHistoryModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
