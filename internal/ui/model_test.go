package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipqueue/internal/bus"
	"go.klb.dev/clipqueue/internal/clip"
	"go.klb.dev/clipqueue/internal/history"
	"go.klb.dev/clipqueue/internal/input"
	"go.klb.dev/clipqueue/internal/notify"
)

func newTestModel(t *testing.T) (Model, *history.Queue, *bus.Bus, *clip.Memory) {
	t.Helper()
	b := bus.New(bus.DefaultCapacity)
	backend := clip.NewMemory()
	q := history.New(10, b, backend, notify.Nop{}, input.Nop{})
	m := NewModel(q, b, nil)
	return m, q, b, backend
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func doTick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tickMsg(time.Now()))
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestNewModelSeedsFromSnapshot(t *testing.T) {
	b := bus.New(bus.DefaultCapacity)
	backend := clip.NewMemory()
	q := history.New(10, b, backend, notify.Nop{}, input.Nop{})
	q.Enqueue("pre-existing")
	b.Drain()

	m := NewModel(q, b, nil)
	assert.Equal(t, []string{"pre-existing"}, m.items)
	assert.Equal(t, 0, m.selected)
	assert.True(t, m.active)
}

func TestTickAppliesCommandsInOrder(t *testing.T) {
	m, q, _, _ := newTestModel(t)

	q.Enqueue("first")
	q.Enqueue("second")
	m = doTick(t, m)

	assert.Equal(t, []string{"first", "second"}, m.items)
	assert.Equal(t, 1, m.selected)
	assert.Contains(t, m.status, "Item added")
}

func TestModeChangedUpdatesFlagAndHook(t *testing.T) {
	b := bus.New(bus.DefaultCapacity)
	backend := clip.NewMemory()
	q := history.New(10, b, backend, notify.Nop{}, input.Nop{})

	var hookVal *bool
	m := NewModel(q, b, func(active bool) { hookVal = &active })

	q.ToggleActive()
	m = doTick(t, m)

	assert.False(t, m.active)
	require.NotNil(t, hookVal, "mode hook must fire")
	assert.False(t, *hookVal)
}

func TestListShrinkClampsSelection(t *testing.T) {
	m, q, b, _ := newTestModel(t)
	q.Enqueue("a")
	q.Enqueue("b")
	q.Enqueue("c")
	m = doTick(t, m)
	require.Equal(t, 2, m.selected)

	// Apply only the shrink, without the accompanying selection command.
	b.Drain()
	m = m.apply(bus.ListUpdated{Items: []string{"a"}})
	assert.Equal(t, 0, m.selected)
}

func TestKeySelectionMovesWithinBounds(t *testing.T) {
	m, q, _, _ := newTestModel(t)
	q.Enqueue("a")
	q.Enqueue("b")
	m = doTick(t, m)
	require.Equal(t, 1, m.selected)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.Equal(t, 0, m.selected)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.Equal(t, 0, m.selected, "selection stops at the head")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 1, m.selected)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 1, m.selected, "selection stops at the tail")
}

func TestEnterCopiesSelectedEntry(t *testing.T) {
	m, q, _, backend := newTestModel(t)
	q.Enqueue("a")
	q.Enqueue("b")
	m = doTick(t, m)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	text, _ := backend.ReadText()
	assert.Equal(t, "a", text)
	assert.Equal(t, 0, q.Snapshot().Cursor)
}

func TestPasteKeyDequeuesOldest(t *testing.T) {
	m, q, _, backend := newTestModel(t)
	q.Enqueue("oldest")
	q.Enqueue("newest")
	m = doTick(t, m)

	next, _ := m.Update(keyRune('p'))
	m = next.(Model)
	m = doTick(t, m)

	text, _ := backend.ReadText()
	assert.Equal(t, "oldest", text)
	assert.Equal(t, []string{"newest"}, m.items)
}

func TestToggleKeyFlipsMode(t *testing.T) {
	m, q, _, _ := newTestModel(t)
	next, _ := m.Update(keyRune('t'))
	m = next.(Model)
	m = doTick(t, m)

	assert.False(t, q.Snapshot().Active)
	assert.False(t, m.active)
	assert.Contains(t, m.status, "INACTIVE")
}

func TestQuitKeyReturnsQuitCmd(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	_, cmd := m.Update(keyRune('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewRendersListAndStatus(t *testing.T) {
	m, q, _, _ := newTestModel(t)
	q.Enqueue("hello world")
	m = doTick(t, m)
	m.width = 80
	m.height = 24

	out := m.View()
	assert.Contains(t, out, "Clipboard History")
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "Item added")
}

func TestViewEmptyHistory(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "history is empty")
}
