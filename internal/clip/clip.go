// Package clip provides the system clipboard port. Only plain text is
// handled; other formats on the OS clipboard are invisible to this program.
//
// The clipboard is a shared OS resource with no exclusivity guarantee, so
// every read and write is best-effort and fallible. Callers treat errors as
// transient.
package clip

// Backend is the interface all clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// ReadText returns the current clipboard text. An empty string with a
	// nil error means the clipboard holds no text content.
	ReadText() (string, error)

	// WriteText replaces the clipboard contents with text.
	WriteText(text string) error

	// Close releases any resources held by the backend.
	Close()
}
