// Package notify sends fire-and-forget desktop notifications. Delivery is
// never guaranteed: failures are logged and swallowed, since a missed toast
// must not affect queue behaviour.
package notify

import (
	"log/slog"
	"time"

	"github.com/gen2brain/beeep"
)

// Title is the application name shown on notifications.
const Title = "Clipboard Queue"

// Notifier delivers a short user-facing notification. timeout is advisory;
// backends without duration control use the platform default.
type Notifier interface {
	Notify(title, message string, timeout time.Duration)
}

// Desktop sends notifications through the OS notification service.
type Desktop struct{}

// NewDesktop returns a Notifier backed by the desktop notification service.
func NewDesktop() *Desktop { return &Desktop{} }

func (*Desktop) Notify(title, message string, _ time.Duration) {
	if err := beeep.Notify(title, message, ""); err != nil {
		slog.Warn("notification failed", "title", title, "err", err)
	}
}

// Nop discards all notifications. Used with --no-notify and in tests.
type Nop struct{}

func (Nop) Notify(string, string, time.Duration) {}
