//go:build darwin

package hotkeys

import "golang.design/x/hotkey"

// Option is the closest macOS equivalent of Alt.
const modAlt = hotkey.ModOption
