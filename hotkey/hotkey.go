package hotkey

import "promptline/shortcut"

// Hotkey provides global shortcut registration with press/release events.
type Hotkey interface {
	Register() error
	Unregister()
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
}

// Factory builds an unregistered Hotkey for one chord.
type Factory func(spec shortcut.Spec) (Hotkey, error)
