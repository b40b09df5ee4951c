// Package hotkeys binds the global hotkey combos to queue operations.
//
// Four bindings, mapped 1:1:
//
//	Ctrl+Alt+V    dequeue oldest and paste
//	Ctrl+Shift+P  toggle queueing
//	Ctrl+Right    navigate next
//	Ctrl+Left     navigate previous
//
// Registration is idempotent, and unhooking removes exactly these four
// bindings. On macOS and Windows the modifier differs per platform, see the
// mods_*.go files.
package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"

	"go.klb.dev/clipqueue/internal/history"
)

type binding struct {
	name   string
	mods   []hotkey.Modifier
	key    hotkey.Key
	action func()
}

// Dispatcher owns the global hotkey registrations and routes key-down
// events to the history queue on its own goroutine.
type Dispatcher struct {
	bindings []binding

	mu         sync.Mutex
	registered []*hotkey.Hotkey
	done       chan struct{}
}

// New returns an unregistered Dispatcher bound to queue.
func New(queue *history.Queue) *Dispatcher {
	return &Dispatcher{
		bindings: []binding{
			{"paste-oldest", []hotkey.Modifier{hotkey.ModCtrl, modAlt}, hotkey.KeyV, queue.DequeueOldest},
			{"toggle-mode", []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyP, queue.ToggleActive},
			{"navigate-next", []hotkey.Modifier{hotkey.ModCtrl}, hotkey.KeyRight, func() { queue.Navigate(1) }},
			{"navigate-previous", []hotkey.Modifier{hotkey.ModCtrl}, hotkey.KeyLeft, func() { queue.Navigate(-1) }},
		},
		done: make(chan struct{}),
	}
}

// Register grabs the four combos with the OS. Calling it again after a
// successful registration is a no-op. On failure any combos grabbed so far
// are released and the dispatcher is left unregistered, so the session runs
// without hotkeys.
func (d *Dispatcher) Register() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.registered) > 0 {
		return nil
	}
	for _, b := range d.bindings {
		hk := hotkey.New(b.mods, b.key)
		if err := hk.Register(); err != nil {
			d.unregisterLocked()
			return fmt.Errorf("register %s: %w", b.name, err)
		}
		d.registered = append(d.registered, hk)
	}
	slog.Info("global hotkeys registered", "count", len(d.registered))
	return nil
}

// Run listens for key-down events until stop is closed, then unhooks.
// Call in a goroutine after a successful Register.
func (d *Dispatcher) Run(stop <-chan struct{}) {
	defer close(d.done)
	defer d.Unregister()

	d.mu.Lock()
	hks := d.registered
	d.mu.Unlock()

	var wg sync.WaitGroup
	for i, hk := range hks {
		b := d.bindings[i]
		wg.Add(1)
		go func(hk *hotkey.Hotkey) {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				case <-hk.Keydown():
					slog.Debug("hotkey pressed", "binding", b.name)
					b.action()
				}
			}
		}(hk)
	}
	wg.Wait()
	slog.Info("hotkey listener stopped")
}

// Done is closed once Run has returned and the hotkeys are unhooked.
func (d *Dispatcher) Done() <-chan struct{} { return d.done }

// Unregister releases exactly the combos this dispatcher registered.
// Idempotent; safe to call whether or not Run was started.
func (d *Dispatcher) Unregister() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unregisterLocked()
}

func (d *Dispatcher) unregisterLocked() {
	for _, hk := range d.registered {
		if err := hk.Unregister(); err != nil {
			slog.Warn("hotkey unregister failed", "err", err)
		}
	}
	if len(d.registered) > 0 {
		slog.Info("global hotkeys unhooked", "count", len(d.registered))
	}
	d.registered = nil
}
