// Package monitor polls the clipboard for new text and feeds it into the
// history queue. The last-observed value is owned by the monitor goroutine
// alone and tracked independently of the queue's dedup, so an unchanged
// clipboard costs one read per tick and no queue lock.
package monitor

import (
	"log/slog"
	"strings"
	"time"

	"go.klb.dev/clipqueue/internal/clip"
	"go.klb.dev/clipqueue/internal/history"
)

// DefaultInterval is the polling cadence when none is configured.
const DefaultInterval = 500 * time.Millisecond

// Monitor watches the clipboard on its own goroutine.
type Monitor struct {
	backend  clip.Backend
	queue    *history.Queue
	interval time.Duration
	done     chan struct{}
}

// New returns a Monitor polling backend every interval. interval <= 0 uses
// DefaultInterval.
func New(backend clip.Backend, queue *history.Queue, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		backend:  backend,
		queue:    queue,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Run polls until stop is closed. Call in a goroutine. The loop observes
// stop within one interval. While queueing is inactive the monitor keeps
// ticking but takes no enqueue action.
func (m *Monitor) Run(stop <-chan struct{}) {
	defer close(m.done)
	slog.Info("clipboard monitor started", "interval", m.interval, "backend", m.backend.Name())

	// Seed with whatever is already on the clipboard so pre-existing
	// content is not captured as a new item.
	last, err := m.backend.ReadText()
	if err != nil {
		slog.Debug("initial clipboard read failed", "err", err)
		last = ""
	}

	for {
		// Polling continues while queueing is inactive; the enqueue is
		// then rejected by the queue, so reactivation does not replay
		// content observed in between.
		wait := m.interval
		if !m.pollOnce(&last) {
			// A panicking backend would otherwise hot-loop.
			wait = 2 * m.interval
		}
		select {
		case <-stop:
			slog.Info("clipboard monitor stopped")
			return
		case <-time.After(wait):
		}
	}
}

// Done is closed when Run returns.
func (m *Monitor) Done() <-chan struct{} { return m.done }

// pollOnce reads the clipboard once and enqueues new non-empty text. A read
// error is transient: the previous last-observed value is retained and the
// next tick proceeds normally. Returns false only when the backend
// panicked, in which case the caller backs off.
func (m *Monitor) pollOnce(last *string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("clipboard poll failed unexpectedly", "panic", r)
			ok = false
		}
	}()
	ok = true

	text, err := m.backend.ReadText()
	if err != nil {
		slog.Debug("clipboard read failed", "err", err)
		return true
	}
	if text == *last {
		return true
	}
	if strings.TrimSpace(text) != "" {
		slog.Debug("new clipboard content observed", "len", len(text))
		m.queue.Enqueue(text)
	}
	*last = text
	return true
}
