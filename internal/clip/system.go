package clip

import (
	"log/slog"

	"golang.design/x/clipboard"
)

type systemBackend struct{}

// New returns the OS clipboard backend, or a headless no-op backend if the
// display environment is unavailable (e.g. a server without X11 or Wayland).
// clipboard.Init is called here rather than in init() so that CLI
// sub-commands (status, list, toggle) don't trigger the warning.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return &headlessBackend{}
	}
	return &systemBackend{}
}

func (*systemBackend) Name() string { return "system clipboard" }

func (*systemBackend) ReadText() (string, error) {
	return string(clipboard.Read(clipboard.FmtText)), nil
}

func (*systemBackend) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

func (*systemBackend) Close() {}
