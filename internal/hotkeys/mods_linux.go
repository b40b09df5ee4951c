//go:build linux

package hotkeys

import "golang.design/x/hotkey"

// X11 exposes Alt as Mod1.
const modAlt = hotkey.Mod1
