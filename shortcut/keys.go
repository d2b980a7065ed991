package shortcut

import (
	"strconv"
	"strings"
)

// Key is a canonical upper-case key symbol.
type Key string

const (
	KeyCtrl  Key = "CTRL"
	KeyShift Key = "SHIFT"
	KeyAlt   Key = "ALT"
	KeySuper Key = "SUPER"

	KeySpace     Key = "SPACE"
	KeyEnter     Key = "ENTER"
	KeyTab       Key = "TAB"
	KeyEscape    Key = "ESCAPE"
	KeyBackspace Key = "BACKSPACE"
	KeyInsert    Key = "INSERT"
	KeyDelete    Key = "DELETE"
	KeyHome      Key = "HOME"
	KeyEnd       Key = "END"
	KeyPageUp    Key = "PAGEUP"
	KeyPageDown  Key = "PAGEDOWN"
	KeyUp        Key = "UP"
	KeyDown      Key = "DOWN"
	KeyLeft      Key = "LEFT"
	KeyRight     Key = "RIGHT"
)

var keyAliases = map[string]Key{
	"RETURN": KeyEnter,
	"ESC":    KeyEscape,
	"DEL":    KeyDelete,
	"INS":    KeyInsert,
	"PGUP":   KeyPageUp,
	"PGDN":   KeyPageDown,
	"BKSP":   KeyBackspace,
}

var namedKeys = map[Key]string{
	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyEscape:    "Escape",
	KeyBackspace: "Backspace",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyCtrl:      "Ctrl",
	KeyShift:     "Shift",
	KeyAlt:       "Alt",
	KeySuper:     "Win",
}

// LookupKey maps a main-key token to its canonical symbol.
// Modifier names are not main keys and are rejected.
func LookupKey(tok string) (Key, bool) {
	up := strings.ToUpper(strings.TrimSpace(tok))
	if k, ok := keyAliases[up]; ok {
		return k, true
	}
	k := Key(up)
	if k.IsLetter() || k.IsDigit() {
		return k, true
	}
	if _, ok := functionIndex(k); ok {
		return k, true
	}
	switch k {
	case KeyCtrl, KeyShift, KeyAlt, KeySuper, "":
		return "", false
	}
	if _, ok := namedKeys[k]; ok {
		return k, true
	}
	return "", false
}

func (k Key) IsLetter() bool {
	return len(k) == 1 && k[0] >= 'A' && k[0] <= 'Z'
}

func (k Key) IsDigit() bool {
	return len(k) == 1 && k[0] >= '0' && k[0] <= '9'
}

// functionIndex returns n for F1..F12.
func functionIndex(k Key) (int, bool) {
	if len(k) < 2 || k[0] != 'F' {
		return 0, false
	}
	n, err := strconv.Atoi(string(k[1:]))
	if err != nil || n < 1 || n > 12 || strconv.Itoa(n) != string(k[1:]) {
		return 0, false
	}
	return n, true
}

func (k Key) IsModifier() bool {
	switch k {
	case KeyCtrl, KeyShift, KeyAlt, KeySuper:
		return true
	}
	return false
}

// Extended reports keys that Win32 injects with KEYEVENTF_EXTENDEDKEY.
func (k Key) Extended() bool {
	switch k {
	case KeySuper, KeyInsert, KeyDelete, KeyHome, KeyEnd, KeyPageUp, KeyPageDown,
		KeyUp, KeyDown, KeyLeft, KeyRight:
		return true
	}
	return false
}

// Name is the display form used by Spec.String.
func (k Key) Name() string {
	if n, ok := namedKeys[k]; ok {
		return n
	}
	return string(k)
}
