package clip

import "sync"

// Memory is an in-process clipboard backend. It backs --clipboard=memory
// development runs and the unit tests, which also use its error injection
// fields to exercise failure paths.
type Memory struct {
	mu   sync.Mutex
	text string

	// ReadErr / WriteErr, when non-nil, are returned by the next calls.
	ReadErr  error
	WriteErr error

	writes int
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Name() string { return "memory" }

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.text, nil
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.text = text
	m.writes++
	return nil
}

// SetText sets the clipboard content directly, simulating another
// application writing to the OS clipboard.
func (m *Memory) SetText(text string) {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
}

// Writes reports how many successful WriteText calls occurred.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) Close() {}
