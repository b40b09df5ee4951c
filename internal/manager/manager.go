// Package manager wires the queue, clipboard monitor, hotkey dispatcher,
// tray, and IPC control socket together and owns their lifecycles. One stop
// channel broadcasts shutdown; every background loop is expected to observe
// it within its own polling interval, and teardown waits for each with a
// bounded timeout. A loop that fails to stop in time is a warning, never an
// error; process exit proceeds regardless.
package manager

import (
	"log/slog"
	"net"
	"sync"
	"time"

	"go.klb.dev/clipqueue/internal/bus"
	"go.klb.dev/clipqueue/internal/clip"
	"go.klb.dev/clipqueue/internal/history"
	"go.klb.dev/clipqueue/internal/hotkeys"
	"go.klb.dev/clipqueue/internal/input"
	"go.klb.dev/clipqueue/internal/ipc"
	"go.klb.dev/clipqueue/internal/monitor"
	"go.klb.dev/clipqueue/internal/notify"
	"go.klb.dev/clipqueue/internal/tray"
)

// Options configures a Manager. Zero-value fields fall back to defaults.
type Options struct {
	MaxSize      int
	PollInterval time.Duration
	Backend      clip.Backend
	Notifier     notify.Notifier
	Paster       input.Paster
	Hotkeys      bool
	Tray         bool
	IPC          bool
}

// Manager is the composition root of a running clipqueue instance.
type Manager struct {
	opts Options

	bus        *bus.Bus
	queue      *history.Queue
	monitor    *monitor.Monitor
	dispatcher *hotkeys.Dispatcher
	tray       *tray.Tray
	ipcLn      net.Listener

	hotkeysOK bool

	stop     chan struct{}
	stopOnce sync.Once

	quitMu sync.Mutex
	onQuit func()
}

// New builds a Manager. It does not start any background work.
func New(opts Options) *Manager {
	if opts.Backend == nil {
		opts.Backend = clip.New()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Paster == nil {
		opts.Paster = input.Nop{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = monitor.DefaultInterval
	}

	m := &Manager{
		opts: opts,
		bus:  bus.New(bus.DefaultCapacity),
		stop: make(chan struct{}),
	}
	m.queue = history.New(opts.MaxSize, m.bus, opts.Backend, opts.Notifier, opts.Paster)
	m.monitor = monitor.New(opts.Backend, m.queue, opts.PollInterval)
	m.dispatcher = hotkeys.New(m.queue)
	if opts.Tray {
		m.tray = tray.New(m.queue, m.requestQuit)
	}
	return m
}

// Queue returns the history queue.
func (m *Manager) Queue() *history.Queue { return m.queue }

// Bus returns the GUI command bus. Exactly one consumer must drain it:
// either the TUI or the manager's own ConsumeCommands loop.
func (m *Manager) Bus() *bus.Bus { return m.bus }

// Tray returns the tray, or nil when disabled.
func (m *Manager) Tray() *tray.Tray { return m.tray }

// OnQuit registers the callback invoked when the user quits from the tray.
func (m *Manager) OnQuit(fn func()) {
	m.quitMu.Lock()
	m.onQuit = fn
	m.quitMu.Unlock()
}

func (m *Manager) requestQuit() {
	m.quitMu.Lock()
	fn := m.onQuit
	m.quitMu.Unlock()
	if fn != nil {
		fn()
	}
}

// Start launches the monitor, hotkey listener, tray, and IPC listener.
// Setup failures of optional facilities disable that facility for the
// session and are surfaced once; they never abort startup.
func (m *Manager) Start() {
	go m.monitor.Run(m.stop)

	if m.opts.Hotkeys {
		if err := m.dispatcher.Register(); err != nil {
			slog.Error("hotkey registration failed, hotkeys disabled for this session", "err", err)
			m.bus.Send(bus.StatusMessage{Text: "Error: Hotkeys failed. Check OS permissions."})
		} else {
			m.hotkeysOK = true
			go m.dispatcher.Run(m.stop)
			m.bus.Send(bus.StatusMessage{Text: "Hotkeys active."})
		}
	}

	if m.tray != nil {
		go m.tray.Run(m.stop)
	}

	if m.opts.IPC {
		ln, err := ipc.Listen()
		if err != nil {
			slog.Warn("IPC socket unavailable", "err", err)
		} else {
			slog.Info("IPC socket listening", "path", ipc.SocketPath())
			m.ipcLn = ln
			go m.serveIPC(ln)
		}
	}
}

// Stop broadcasts shutdown and waits, with bounded timeouts, for the
// background loops to terminate.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
		if m.ipcLn != nil {
			_ = m.ipcLn.Close()
		}

		awaitDone(m.monitor.Done(), m.opts.PollInterval+200*time.Millisecond, "clipboard monitor")
		if m.hotkeysOK {
			awaitDone(m.dispatcher.Done(), time.Second, "hotkey listener")
		} else {
			// Never ran, but may hold registrations from a partial setup.
			m.dispatcher.Unregister()
		}
		if m.tray != nil {
			awaitDone(m.tray.Done(), time.Second, "system tray")
		}

		m.opts.Backend.Close()
		slog.Info("manager stopped")
	})
}

// ConsumeCommands drains the GUI bus on a fixed tick for headless runs
// (--no-ui), keeping the tray state current and preventing the bus from
// filling. Blocks until stop is closed or the manager stops.
func (m *Manager) ConsumeCommands(stop <-chan struct{}) {
	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-m.stop:
			return
		case <-t.C:
			for _, cmd := range m.bus.Drain() {
				switch c := cmd.(type) {
				case bus.ModeChanged:
					if m.tray != nil {
						m.tray.SetActive(c.Active)
					}
				case bus.StatusMessage:
					slog.Debug("status", "text", c.Text)
				default:
					// List and selection updates have no consumer
					// without a UI.
				}
			}
		}
	}
}

func awaitDone(done <-chan struct{}, timeout time.Duration, name string) {
	select {
	case <-done:
	case <-time.After(timeout):
		slog.Warn("background loop did not stop in time", "loop", name)
	}
}
