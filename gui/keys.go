//go:build gui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"promptline/shortcut"
)

var fyneKeys = map[shortcut.Key]fyne.KeyName{
	shortcut.KeySpace:     fyne.KeySpace,
	shortcut.KeyEnter:     fyne.KeyReturn,
	shortcut.KeyTab:       fyne.KeyTab,
	shortcut.KeyEscape:    fyne.KeyEscape,
	shortcut.KeyBackspace: fyne.KeyBackspace,
	shortcut.KeyInsert:    fyne.KeyInsert,
	shortcut.KeyDelete:    fyne.KeyDelete,
	shortcut.KeyHome:      fyne.KeyHome,
	shortcut.KeyEnd:       fyne.KeyEnd,
	shortcut.KeyPageUp:    fyne.KeyPageUp,
	shortcut.KeyPageDown:  fyne.KeyPageDown,
	shortcut.KeyUp:        fyne.KeyUp,
	shortcut.KeyDown:      fyne.KeyDown,
	shortcut.KeyLeft:      fyne.KeyLeft,
	shortcut.KeyRight:     fyne.KeyRight,
}

var fyneModifiers = map[shortcut.Modifier]fyne.KeyModifier{
	shortcut.Ctrl:  fyne.KeyModifierControl,
	shortcut.Shift: fyne.KeyModifierShift,
	shortcut.Alt:   fyne.KeyModifierAlt,
	shortcut.Super: fyne.KeyModifierSuper,
}

// customShortcut converts a chord to a fyne canvas shortcut. Chords
// without modifiers are handled as typed keys instead and report false.
func customShortcut(chord string) (*desktop.CustomShortcut, bool) {
	spec, err := shortcut.Parse(chord)
	if err != nil || len(spec.Modifiers) == 0 {
		return nil, false
	}
	name, ok := fyneKeys[spec.Key]
	if !ok {
		// Letters, digits and F-keys share their names.
		name = fyne.KeyName(spec.Key)
	}
	var mod fyne.KeyModifier
	for _, m := range spec.Modifiers {
		mod |= fyneModifiers[m]
	}
	return &desktop.CustomShortcut{KeyName: name, Modifier: mod}, true
}

// plainKey is the key for a modifier-less chord such as "Escape".
func plainKey(chord string) (fyne.KeyName, bool) {
	spec, err := shortcut.Parse(chord)
	if err != nil || len(spec.Modifiers) != 0 {
		return "", false
	}
	if name, ok := fyneKeys[spec.Key]; ok {
		return name, true
	}
	return fyne.KeyName(spec.Key), true
}
