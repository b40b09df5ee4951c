// Package tray puts a status icon in the system tray with a small menu:
// show history (default action), a checkable queueing toggle, and quit.
// The tray runs its own blocking loop on a dedicated goroutine; if the
// desktop has no tray support the feature is disabled for the session and
// everything else keeps working.
package tray

import (
	"log/slog"

	"fyne.io/systray"

	"go.klb.dev/clipqueue/internal/history"
)

// Tray owns the systray icon and menu.
type Tray struct {
	queue  *history.Queue
	onQuit func()

	activeItem *systray.MenuItem
	done       chan struct{}
}

// New returns a Tray driving queue. onQuit is invoked when the user picks
// Quit from the menu.
func New(queue *history.Queue, onQuit func()) *Tray {
	return &Tray{
		queue:  queue,
		onQuit: onQuit,
		done:   make(chan struct{}),
	}
}

// Run starts the tray loop and blocks until stop is closed or the tray
// backend shuts down. Call in a goroutine. A tray backend failure is
// contained here: logged once, never fatal.
func (t *Tray) Run(stop <-chan struct{}) {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			slog.Error("system tray unavailable, running without it", "panic", r)
		}
	}()

	systray.Run(func() { t.onReady(stop) }, func() {
		slog.Info("system tray stopped")
	})
}

// Done is closed when the tray loop has exited.
func (t *Tray) Done() <-chan struct{} { return t.done }

// SetActive reflects the queueing flag on the checkable menu item. Safe to
// call from any goroutine.
func (t *Tray) SetActive(active bool) {
	if t.activeItem == nil {
		return
	}
	if active {
		t.activeItem.Check()
	} else {
		t.activeItem.Uncheck()
	}
}

func (t *Tray) onReady(stop <-chan struct{}) {
	systray.SetTitle("Clipboard Queue")
	systray.SetTooltip("Clipboard Queue")
	systray.SetIcon(iconPNG())

	show := systray.AddMenuItem("Show History", "Raise the history window")
	t.activeItem = systray.AddMenuItemCheckbox("Queueing Active", "Capture new clipboard content", t.queue.Snapshot().Active)
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Exit Clipboard Queue")

	slog.Info("system tray ready")

	go func() {
		for {
			select {
			case <-show.ClickedCh:
				t.queue.RequestShow()
			case <-t.activeItem.ClickedCh:
				t.queue.ToggleActive()
			case <-quit.ClickedCh:
				t.onQuit()
				systray.Quit()
				return
			case <-stop:
				systray.Quit()
				return
			}
		}
	}()
}
