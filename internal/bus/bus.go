// Package bus carries GUI commands from the queue core to the presentation
// loop. It is a multi-producer, single-consumer FIFO: any goroutine may send,
// exactly one consumer drains. Sends never block: when the channel is at hard
// capacity the command is dropped and logged, which under the default capacity
// only happens if the consumer has stopped polling.
package bus

import "log/slog"

// DefaultCapacity is generous enough that drops indicate a stuck consumer,
// not normal load.
const DefaultCapacity = 1000

// Command is a closed union of presentation updates. The consumer decodes it
// with an exhaustive type switch.
type Command interface {
	guiCommand()
}

// ListUpdated carries a full ordered snapshot of the history, oldest first.
type ListUpdated struct {
	Items []string
}

// SelectionChanged carries the current cursor, or history.NoSelection.
type SelectionChanged struct {
	Index int
}

// StatusMessage carries free text for the status bar.
type StatusMessage struct {
	Text string
}

// ModeChanged reports the queueing flag after a toggle.
type ModeChanged struct {
	Active bool
}

// ShowWindow asks the presentation layer to raise itself.
type ShowWindow struct{}

func (ListUpdated) guiCommand()      {}
func (SelectionChanged) guiCommand() {}
func (StatusMessage) guiCommand()    {}
func (ModeChanged) guiCommand()      {}
func (ShowWindow) guiCommand()       {}

// Bus is the command channel. The zero value is not usable; use New.
type Bus struct {
	ch chan Command
}

// New returns a Bus with the given capacity, or DefaultCapacity if n <= 0.
func New(n int) *Bus {
	if n <= 0 {
		n = DefaultCapacity
	}
	return &Bus{ch: make(chan Command, n)}
}

// Send enqueues cmd without blocking. A full channel drops the command.
func (b *Bus) Send(cmd Command) {
	select {
	case b.ch <- cmd:
	default:
		slog.Warn("gui command bus full, dropping", "command", commandName(cmd))
	}
}

// Drain returns all commands currently pending, in emission order, without
// blocking. The presentation loop calls this on its poll tick.
func (b *Bus) Drain() []Command {
	var out []Command
	for {
		select {
		case cmd := <-b.ch:
			out = append(out, cmd)
		default:
			return out
		}
	}
}

// Len reports the number of pending commands.
func (b *Bus) Len() int { return len(b.ch) }

func commandName(cmd Command) string {
	switch cmd.(type) {
	case ListUpdated:
		return "list-updated"
	case SelectionChanged:
		return "selection-changed"
	case StatusMessage:
		return "status-message"
	case ModeChanged:
		return "mode-changed"
	case ShowWindow:
		return "show-window"
	default:
		return "unknown"
	}
}
