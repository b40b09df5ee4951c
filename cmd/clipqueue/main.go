// clipqueue: a bounded clipboard history with queue semantics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "clipqueue",
		Short: "Bounded clipboard history with queue semantics",
		Long: `clipqueue keeps an ordered, bounded history of text copied to the system
clipboard. A background monitor captures new clipboard content; global
hotkeys dequeue the oldest entry (Ctrl+Alt+V), toggle capturing
(Ctrl+Shift+P), and cycle the history onto the clipboard (Ctrl+Left/Right).

Run "clipqueue run" to start the manager with its terminal UI and tray icon.
The other sub-commands talk to the running manager over a local socket.

Config file search order (first found wins):
  /etc/clipqueue/clipqueue.toml
  $HOME/.config/clipqueue/clipqueue.toml
  path supplied via --config

All flags can be set via CLIPQUEUE_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newStatusCmd(),
		newListCmd(),
		newPasteCmd(),
		newToggleCmd(),
		newNextCmd(),
		newPrevCmd(),
		newShowCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipqueue %s\n", Version)
		},
	}
}
