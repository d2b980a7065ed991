//go:build !linux && !windows && !darwin

package hotkey

import (
	"errors"

	"promptline/shortcut"
)

var errNoBackend = errors.New("global hotkeys unsupported on this platform")

func New(spec shortcut.Spec) (Hotkey, error) {
	return nil, errNoBackend
}

func Diagnose() (string, error) {
	return "", errNoBackend
}
