package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"

	"promptline/config"
	"promptline/shortcut"
)

// bubbletea names for keys whose shortcut name differs.
var teaNames = map[shortcut.Key]string{
	shortcut.KeyEnter:     "enter",
	shortcut.KeyEscape:    "esc",
	shortcut.KeySpace:     " ",
	shortcut.KeyTab:       "tab",
	shortcut.KeyBackspace: "backspace",
	shortcut.KeyInsert:    "insert",
	shortcut.KeyDelete:    "delete",
	shortcut.KeyHome:      "home",
	shortcut.KeyEnd:       "end",
	shortcut.KeyPageUp:    "pgup",
	shortcut.KeyPageDown:  "pgdown",
	shortcut.KeyUp:        "up",
	shortcut.KeyDown:      "down",
	shortcut.KeyLeft:      "left",
	shortcut.KeyRight:     "right",
}

// KeyString renders a chord the way tea.KeyMsg.String reports it, e.g.
// "ctrl+n" or "alt+enter". Terminals cannot report Super, so chords using
// it map to "".
func KeyString(s shortcut.Spec) string {
	if s.Has(shortcut.Super) {
		return ""
	}
	name, ok := teaNames[s.Key]
	if !ok {
		name = strings.ToLower(string(s.Key))
	}
	if s.Key == shortcut.KeySpace && s.Has(shortcut.Ctrl) {
		name = "@"
	}

	var b strings.Builder
	if s.Has(shortcut.Alt) {
		b.WriteString("alt+")
	}
	if s.Has(shortcut.Ctrl) {
		b.WriteString("ctrl+")
	}
	if s.Has(shortcut.Shift) {
		if s.Key.IsLetter() && !s.Has(shortcut.Ctrl) {
			name = strings.ToUpper(name)
		} else {
			b.WriteString("shift+")
		}
	}
	b.WriteString(name)
	return b.String()
}

type keyMap struct {
	Submit      key.Binding
	Newline     key.Binding
	Close       key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding
	Search      key.Binding
	Clear       key.Binding
	Yank        key.Binding
	Quit        key.Binding
}

func binding(chord, help string, extra ...string) key.Binding {
	keys := append([]string(nil), extra...)
	if spec, err := shortcut.Parse(chord); err == nil {
		if k := KeyString(spec); k != "" {
			keys = append(keys, k)
		}
	}
	helpKey := chord
	if len(keys) > 0 && chord == "" {
		helpKey = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.ToLower(helpKey), help))
}

func newKeyMap(s config.Shortcuts) keyMap {
	return keyMap{
		Submit:      binding(s.Paste, "paste", "enter"),
		Newline:     key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "newline")),
		Close:       binding(s.Close, "close", "esc"),
		HistoryPrev: binding(s.HistoryPrev, "older"),
		HistoryNext: binding(s.HistoryNext, "newer"),
		Search:      binding(s.Search, "search"),
		Clear:       binding(s.Clear, "clear"),
		Yank:        binding(s.Yank, "yank"),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.Close, k.HistoryPrev, k.Search}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.HistoryNext, k.Clear, k.Quit}}
}

// readlineKeys points the textarea editing bindings at the configured
// chords. Arrow, Home/End and Delete keys stay bound alongside.
func readlineKeys(km *textarea.KeyMap, s config.Shortcuts) {
	rebind(&km.LineStart, s.LineStart, "home")
	rebind(&km.LineEnd, s.LineEnd, "end")
	rebind(&km.CharacterBackward, s.CharBack, "left")
	rebind(&km.CharacterForward, s.CharForward, "right")
	rebind(&km.WordBackward, s.WordBack, "alt+left")
	rebind(&km.WordForward, s.WordForward, "alt+right")
	rebind(&km.DeleteAfterCursor, s.KillToEnd)
	rebind(&km.DeleteBeforeCursor, s.KillToStart)
	rebind(&km.DeleteWordBackward, s.KillWordBack, "alt+backspace")
	rebind(&km.DeleteCharacterForward, s.DeleteChar, "delete")
}

func rebind(b *key.Binding, chord string, fixed ...string) {
	keys := append([]string(nil), fixed...)
	if spec, err := shortcut.Parse(chord); err == nil {
		if k := KeyString(spec); k != "" {
			keys = append(keys, k)
		}
	}
	b.SetKeys(keys...)
}

// removed returns the run of text deleted between before and after.
func removed(before, after string) string {
	b, a := []rune(before), []rune(after)
	if len(a) >= len(b) {
		return ""
	}
	i := 0
	for i < len(a) && b[i] == a[i] {
		i++
	}
	j := 0
	for j < len(a)-i && b[len(b)-1-j] == a[len(a)-1-j] {
		j++
	}
	return string(b[i : len(b)-j])
}
