package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipqueue/internal/clip"
	"go.klb.dev/clipqueue/internal/history"
	"go.klb.dev/clipqueue/internal/input"
	"go.klb.dev/clipqueue/internal/manager"
	"go.klb.dev/clipqueue/internal/monitor"
	"go.klb.dev/clipqueue/internal/notify"
	"go.klb.dev/clipqueue/internal/ui"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clipboard queue manager (+ terminal UI and tray)",
		Long: `Starts the clipboard monitor, global hotkeys, system tray, and the
terminal UI. With --no-ui the manager runs headless; the history is then
driven entirely by hotkeys, the tray, and the clipqueue sub-commands.

Config file search order:
  /etc/clipqueue/clipqueue.toml
  $HOME/.config/clipqueue/clipqueue.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → CLIPQUEUE_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runManager(v) },
	}

	f := cmd.Flags()
	f.Int("max-size", history.DefaultMaxSize, "maximum number of history entries")
	f.Duration("poll-interval", monitor.DefaultInterval, "clipboard polling interval")
	f.String("clipboard", "system", "clipboard backend: system|memory")
	f.Bool("no-ui", false, "run headless (no terminal UI)")
	f.Bool("no-tray", false, "disable the system tray icon")
	f.Bool("no-hotkeys", false, "disable global hotkeys")
	f.Bool("no-notify", false, "disable desktop notifications")
	f.Bool("no-paste", false, "skip paste synthesis after a dequeue")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runManager(v *viper.Viper) error {
	noUI := v.GetBool("no-ui")
	setupLogging(v, !noUI)

	slog.Info("clipqueue starting",
		"version", Version,
		"max_size", v.GetInt("max-size"),
		"poll_interval", v.GetDuration("poll-interval"),
		"ui", !noUI,
	)

	var backend clip.Backend
	switch name := v.GetString("clipboard"); name {
	case "memory":
		backend = clip.NewMemory()
	case "system", "":
		backend = clip.New()
	default:
		return fmt.Errorf("unknown clipboard backend %q", name)
	}

	var notifier notify.Notifier = notify.Nop{}
	if !v.GetBool("no-notify") {
		notifier = notify.NewDesktop()
	}

	var paster input.Paster = input.Nop{}
	if !v.GetBool("no-paste") {
		p, err := input.NewKeyboard()
		if err != nil {
			slog.Warn("paste synthesis unavailable for this session", "err", err)
		} else {
			paster = p
		}
	}

	mgr := manager.New(manager.Options{
		MaxSize:      v.GetInt("max-size"),
		PollInterval: v.GetDuration("poll-interval"),
		Backend:      backend,
		Notifier:     notifier,
		Paster:       paster,
		Hotkeys:      !v.GetBool("no-hotkeys"),
		Tray:         !v.GetBool("no-tray"),
		IPC:          true,
	})
	mgr.Start()
	defer mgr.Stop()

	if noUI {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		mgr.OnQuit(cancel)
		mgr.ConsumeCommands(ctx.Done())
		slog.Info("shutting down")
		return nil
	}

	prog := ui.NewProgram(mgr.Queue(), mgr.Bus(), func(active bool) {
		if t := mgr.Tray(); t != nil {
			t.SetActive(active)
		}
	})
	mgr.OnQuit(prog.Quit)

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	slog.Info("shutting down")
	return nil
}
