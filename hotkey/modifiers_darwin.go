//go:build darwin

package hotkey

import (
	"golang.design/x/hotkey"

	"promptline/shortcut"
)

var modifierMap = map[shortcut.Modifier]hotkey.Modifier{
	shortcut.Ctrl:  hotkey.ModCtrl,
	shortcut.Shift: hotkey.ModShift,
	shortcut.Alt:   hotkey.ModOption,
	shortcut.Super: hotkey.ModCmd,
}
