// Package history implements the bounded clipboard history queue.
//
// The queue is the single owner of all history state. Every operation takes
// one exclusive critical section, so concurrent callers (the clipboard
// monitor, the hotkey dispatcher, the TUI, the IPC handler) serialise here.
// Mutations emit GUI commands onto the bus before the operation returns, so
// command order on the bus matches mutation order.
package history

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.klb.dev/clipqueue/internal/bus"
	"go.klb.dev/clipqueue/internal/clip"
	"go.klb.dev/clipqueue/internal/input"
	"go.klb.dev/clipqueue/internal/notify"
)

// NoSelection is the cursor value meaning no entry is selected.
const NoSelection = -1

// DefaultMaxSize bounds the history when no size is configured.
const DefaultMaxSize = 25

const (
	notifyTimeoutShort  = 2 * time.Second
	notifyTimeoutMedium = 3 * time.Second
)

// Queue is a bounded FIFO of clipboard text entries with a navigation
// cursor. Oldest entry at the head, newest at the tail.
type Queue struct {
	mu      sync.Mutex
	items   []string
	cursor  int
	maxSize int
	active  bool

	bus      *bus.Bus
	backend  clip.Backend
	notifier notify.Notifier
	paster   input.Paster
}

// Snapshot is a consistent copy of the queue state for presentation and the
// IPC status/list commands.
type Snapshot struct {
	Items   []string
	Cursor  int
	Active  bool
	MaxSize int
}

// New returns an empty, active Queue holding at most maxSize entries.
func New(maxSize int, b *bus.Bus, backend clip.Backend, notifier notify.Notifier, paster input.Paster) *Queue {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	slog.Info("history queue initialised", "max_size", maxSize)
	return &Queue{
		cursor:   NoSelection,
		maxSize:  maxSize,
		active:   true,
		bus:      b,
		backend:  backend,
		notifier: notifier,
		paster:   paster,
	}
}

// Enqueue appends text to the history. No-op when queueing is inactive, when
// text is empty after trimming, or when text equals the current tail
// (adjacent dedup; an earlier identical entry does not block the add). On
// overflow the oldest entry is evicted. The cursor moves to the new tail.
func (q *Queue) Enqueue(text string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.active {
		slog.Debug("queueing inactive, item not added")
		return
	}
	if strings.TrimSpace(text) == "" {
		slog.Debug("empty clipboard text, item not added")
		return
	}
	if n := len(q.items); n > 0 && q.items[n-1] == text {
		slog.Debug("item matches queue tail, not added")
		return
	}

	q.items = append(q.items, text)
	slog.Info("item added to queue", "preview", preview(text, 50), "len", len(q.items))
	q.bus.Send(bus.StatusMessage{Text: "Item added: " + preview(text, 30)})

	if len(q.items) > q.maxSize {
		evicted := q.items[0]
		q.items = q.items[1:]
		slog.Info("queue full, oldest evicted", "preview", preview(evicted, 50))
		q.bus.Send(bus.StatusMessage{Text: "Queue full. Oldest removed: " + preview(evicted, 30)})
	}

	q.cursor = len(q.items) - 1
	q.bus.Send(bus.ListUpdated{Items: q.snapshotItems()})
	q.bus.Send(bus.SelectionChanged{Index: q.cursor})

	q.notifier.Notify(notify.Title, "Item added: "+preview(text, 30), notifyTimeoutShort)
}

// DequeueOldest removes the oldest entry, writes it to the clipboard, and
// requests an advisory paste synthesis. The clipboard write is the durable
// effect; a failed synthesis is reported but never rolled back.
func (q *Queue) DequeueOldest() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.active {
		slog.Debug("queueing inactive, cannot dequeue")
		q.bus.Send(bus.StatusMessage{Text: "Queue mode inactive. Cannot dequeue."})
		return
	}
	if len(q.items) == 0 {
		slog.Info("queue empty, nothing to paste")
		q.bus.Send(bus.StatusMessage{Text: "Queue empty. Nothing to paste."})
		return
	}

	item := q.items[0]
	q.items = q.items[1:]
	q.writeClipboard(item)
	slog.Info("dequeued to clipboard", "preview", preview(item, 50), "remaining", len(q.items))
	q.bus.Send(bus.StatusMessage{Text: "Pasted oldest: " + preview(item, 30)})
	q.bus.Send(bus.ListUpdated{Items: q.snapshotItems()})

	if len(q.items) == 0 {
		q.cursor = NoSelection
	} else if q.cursor != NoSelection {
		q.cursor = max(NoSelection, q.cursor-1)
	}
	q.bus.Send(bus.SelectionChanged{Index: q.cursor})

	if err := q.paster.SimulatePaste(); err != nil {
		slog.Error("paste synthesis failed, item left on clipboard", "err", err)
		q.bus.Send(bus.StatusMessage{Text: "Oldest item on clipboard. Paste manually."})
	}
}

// Navigate moves the cursor by direction (+1 next, -1 previous) on a ring
// over the current entries and writes the entry at the new cursor to the
// clipboard without removing it. From NoSelection, +1 starts at the head and
// -1 at the tail.
func (q *Queue) Navigate(direction int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.active || len(q.items) == 0 {
		msg := "Queue is empty."
		if !q.active {
			msg = "Queue mode inactive."
		}
		slog.Debug("cannot navigate", "reason", msg)
		q.bus.Send(bus.StatusMessage{Text: msg + " No item to show."})
		return
	}

	if q.cursor == NoSelection {
		if direction == 1 {
			q.cursor = 0
		} else {
			q.cursor = len(q.items) - 1
		}
	} else {
		q.cursor = (q.cursor + direction + len(q.items)) % len(q.items)
	}

	item := q.items[q.cursor]
	q.writeClipboard(item)
	slog.Info("navigated", "cursor", q.cursor, "preview", preview(item, 50))
	q.bus.Send(bus.StatusMessage{Text: "On clipboard: " + preview(item, 30)})
	q.bus.Send(bus.SelectionChanged{Index: q.cursor})
}

// ToggleActive flips the queueing flag. Entries and cursor are untouched;
// with queueing off, existing entries can still be dequeued or navigated.
func (q *Queue) ToggleActive() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.active = !q.active
	state := "INACTIVE"
	if q.active {
		state = "ACTIVE"
	}
	slog.Info("queue mode toggled", "state", state)
	q.bus.Send(bus.StatusMessage{Text: "Queue mode: " + state})
	q.bus.Send(bus.ModeChanged{Active: q.active})

	q.notifier.Notify(notify.Title, "Queue mode is now "+state+".", notifyTimeoutMedium)
}

// CopyItem writes the entry at index to the clipboard without removing it
// and records index as the cursor. An out-of-range index is rejected
// silently: it means the UI raced an eviction and holds a stale index.
func (q *Queue) CopyItem(index int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		slog.Debug("stale index ignored", "index", index, "len", len(q.items))
		return
	}

	item := q.items[index]
	q.cursor = index
	q.writeClipboard(item)
	slog.Info("copied selected item", "index", index, "preview", preview(item, 50))
	q.bus.Send(bus.StatusMessage{Text: "Copied to clipboard: " + preview(item, 30)})
	q.bus.Send(bus.SelectionChanged{Index: q.cursor})

	q.notifier.Notify(notify.Title, "Copied: "+preview(item, 30), notifyTimeoutShort)
}

// Active reports whether queueing is on.
func (q *Queue) Active() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active
}

// Snapshot returns a consistent copy of the current state.
func (q *Queue) Snapshot() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Snapshot{
		Items:   q.snapshotItems(),
		Cursor:  q.cursor,
		Active:  q.active,
		MaxSize: q.maxSize,
	}
}

// RequestShow asks the presentation layer to raise its window, refreshing
// the list and selection first so the raised view is current.
func (q *Queue) RequestShow() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.bus.Send(bus.ListUpdated{Items: q.snapshotItems()})
	q.bus.Send(bus.SelectionChanged{Index: q.cursor})
	q.bus.Send(bus.ShowWindow{})
}

// writeClipboard writes under the queue lock. Failure is transient: logged,
// reported on the status bar, never propagated.
func (q *Queue) writeClipboard(text string) {
	if err := q.backend.WriteText(text); err != nil {
		slog.Error("clipboard write failed", "err", err)
		q.bus.Send(bus.StatusMessage{Text: "Error: Could not set clipboard."})
		return
	}
	slog.Debug("clipboard updated")
}

// snapshotItems copies items for emission. Must hold q.mu.
func (q *Queue) snapshotItems() []string {
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}

// preview returns at most n runes of s, with an ellipsis when truncated.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
