//go:build gui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// captureEntry is a multi-line entry that routes configured chords to
// actions before normal editing sees them.
type captureEntry struct {
	widget.Entry
	shortcuts map[string]func()
	keys      map[fyne.KeyName]func()
}

func newCaptureEntry(rows int) *captureEntry {
	e := &captureEntry{
		shortcuts: map[string]func(){},
		keys:      map[fyne.KeyName]func(){},
	}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	e.SetMinRowsVisible(rows)
	return e
}

// bind attaches fn to chord. It reports whether the chord could be bound.
func (e *captureEntry) bind(chord string, fn func()) bool {
	if cs, ok := customShortcut(chord); ok {
		e.shortcuts[cs.ShortcutName()] = fn
		return true
	}
	if k, ok := plainKey(chord); ok {
		e.keys[k] = fn
		return true
	}
	return false
}

func (e *captureEntry) TypedKey(ev *fyne.KeyEvent) {
	if fn, ok := e.keys[ev.Name]; ok {
		fn()
		return
	}
	e.Entry.TypedKey(ev)
}

func (e *captureEntry) TypedShortcut(s fyne.Shortcut) {
	if cs, ok := s.(*desktop.CustomShortcut); ok {
		if fn, ok := e.shortcuts[cs.ShortcutName()]; ok {
			fn()
			return
		}
	}
	e.Entry.TypedShortcut(s)
}

// send returns an action that replays a plain key through the entry's own
// editing, bypassing the chord table.
func (e *captureEntry) send(name fyne.KeyName) func() {
	return func() { e.Entry.TypedKey(&fyne.KeyEvent{Name: name}) }
}
