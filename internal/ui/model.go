// Package ui renders the history list, selection, status line, and queueing
// flag as a terminal UI. It is the single consumer of the GUI command bus:
// a fixed 100ms tick drains all pending commands and applies them in
// emission order. The model never mutates queue state directly; every user
// action goes through a queue operation, and the render refreshes when the
// resulting commands arrive.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"go.klb.dev/clipqueue/internal/bus"
	"go.klb.dev/clipqueue/internal/history"
)

// pollInterval is the command bus poll cadence.
const pollInterval = 100 * time.Millisecond

type tickMsg time.Time

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Copy   key.Binding
	Paste  key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Copy:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy selected")),
		Paste:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste oldest & remove")),
		Toggle: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle queueing")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model for the history view.
type Model struct {
	queue    *history.Queue
	commands *bus.Bus

	// onMode, when non-nil, is invoked on mode-changed commands so the
	// tray checkbox tracks the queueing flag.
	onMode func(active bool)

	items    []string
	selected int
	active   bool
	status   string

	width  int
	height int
	keys   keyMap
}

// NewModel seeds the view from a queue snapshot. onMode may be nil.
func NewModel(queue *history.Queue, commands *bus.Bus, onMode func(bool)) Model {
	snap := queue.Snapshot()
	status := "Ready. Queue mode: INACTIVE"
	if snap.Active {
		status = "Ready. Queue mode: ACTIVE"
	}
	return Model{
		queue:    queue,
		commands: commands,
		onMode:   onMode,
		items:    snap.Items,
		selected: snap.Cursor,
		active:   snap.Active,
		status:   status,
		width:    80,
		height:   24,
		keys:     defaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		for _, cmd := range m.commands.Drain() {
			m = m.apply(cmd)
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.items)-1 {
				m.selected++
			}
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			// Stale selections are rejected by the queue, not here.
			m.queue.CopyItem(m.selected)
			return m, nil
		case key.Matches(msg, m.keys.Paste):
			m.queue.DequeueOldest()
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.queue.ToggleActive()
			return m, nil
		}
	}
	return m, nil
}

// apply folds one GUI command into the model. The union is decoded
// exhaustively; an unknown command is a programming error and is ignored.
func (m Model) apply(cmd bus.Command) Model {
	switch c := cmd.(type) {
	case bus.ListUpdated:
		m.items = c.Items
		if m.selected >= len(m.items) {
			m.selected = len(m.items) - 1
		}
	case bus.SelectionChanged:
		m.selected = c.Index
	case bus.StatusMessage:
		m.status = c.Text
	case bus.ModeChanged:
		m.active = c.Active
		if m.onMode != nil {
			m.onMode(c.Active)
		}
	case bus.ShowWindow:
		// A terminal UI is always visible; the refreshed list and
		// selection arrive as their own commands.
	}
	return m
}

// Selected returns the current UI selection index, or history.NoSelection.
func (m Model) Selected() int { return m.selected }

// NewProgram wraps the model in a tea.Program using the alternate screen.
func NewProgram(queue *history.Queue, commands *bus.Bus, onMode func(bool)) *tea.Program {
	return tea.NewProgram(NewModel(queue, commands, onMode), tea.WithAltScreen())
}
