// Package input synthesises keyboard input for the advisory paste step after
// a dequeue. The clipboard write is the durable effect; a failed paste
// synthesis leaves the item on the clipboard for manual pasting.
package input

import (
	"fmt"
	"runtime"
	"time"

	"github.com/micmonay/keybd_event"
)

// Paster simulates the platform paste chord in the focused application.
type Paster interface {
	SimulatePaste() error
}

type keyboardPaster struct {
	kb keybd_event.KeyBonding
}

// NewKeyboard returns a Paster that synthesises Ctrl+V (Cmd+V on macOS).
func NewKeyboard() (Paster, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("keyboard binding: %w", err)
	}
	if runtime.GOOS == "linux" {
		// The uinput device needs a moment before it accepts events.
		time.Sleep(2 * time.Second)
	}
	return &keyboardPaster{kb: kb}, nil
}

func (p *keyboardPaster) SimulatePaste() error {
	p.kb.SetKeys(keybd_event.VK_V)
	if runtime.GOOS == "darwin" {
		p.kb.HasSuper(true)
	} else {
		p.kb.HasCTRL(true)
	}
	// Brief delay so the preceding clipboard write settles before the chord.
	time.Sleep(100 * time.Millisecond)
	if err := p.kb.Launching(); err != nil {
		return fmt.Errorf("paste synthesis: %w", err)
	}
	return nil
}

// Nop performs no input synthesis. Used with --no-paste and in tests.
type Nop struct{}

func (Nop) SimulatePaste() error { return nil }
