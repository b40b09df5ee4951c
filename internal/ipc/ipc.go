// Package ipc provides the local Unix-socket channel used by CLI
// sub-commands (status, list, paste, toggle, show) to talk to a running
// manager instead of each spawning their own clipboard watcher.
package ipc

import (
	"net"
	"os"
	"path/filepath"
	"runtime"
)

// SocketPath returns the platform-appropriate path for the IPC socket.
//
//   - Linux:        $XDG_RUNTIME_DIR/clipqueue.sock, else $TMPDIR
//   - macOS:        $TMPDIR/clipqueue.sock
//   - Windows:      \\.\pipe\clipqueue (named pipe, not yet implemented)
//
// Override with $CLIPQUEUE_SOCKET.
func SocketPath() string {
	if s := os.Getenv("CLIPQUEUE_SOCKET"); s != "" {
		return s
	}
	if runtime.GOOS == "windows" {
		return `\\.\pipe\clipqueue`
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "clipqueue.sock")
	}
	return filepath.Join(os.TempDir(), "clipqueue.sock")
}

// IsRunning reports whether a manager appears to be listening on the IPC
// socket. It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := Dial()
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Dial connects to the IPC socket of a running manager.
func Dial() (net.Conn, error) {
	return net.Dial("unix", SocketPath())
}

// Listen creates a net.Listener on the IPC socket path, removing any stale
// socket file from a previous (crashed) run first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	_ = os.Remove(path)
	return net.Listen("unix", path)
}
