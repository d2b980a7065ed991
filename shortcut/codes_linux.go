//go:build linux

package shortcut

// Linux evdev key codes (linux/input-event-codes.h).
var platformCodes = map[Key]uint16{
	KeyCtrl:      29, // KEY_LEFTCTRL
	KeyShift:     42,
	KeyAlt:       56,
	KeySuper:     125, // KEY_LEFTMETA
	KeySpace:     57,
	KeyEnter:     28,
	KeyTab:       15,
	KeyEscape:    1,
	KeyBackspace: 14,
	KeyInsert:    110,
	KeyDelete:    111,
	KeyHome:      102,
	KeyEnd:       107,
	KeyPageUp:    104,
	KeyPageDown:  109,
	KeyUp:        103,
	KeyDown:      108,
	KeyLeft:      105,
	KeyRight:     106,
}

var letterCodes = [26]uint16{
	30, 48, 46, 32, 18, 33, 34, 35, 23, 36, 37, 38, 50,
	49, 24, 25, 16, 19, 31, 20, 22, 47, 17, 45, 21, 44,
}

// Right-hand modifiers share a symbol with the left one.
var rightModifiers = map[uint16]Key{
	97:  KeyCtrl,
	54:  KeyShift,
	100: KeyAlt,
	126: KeySuper,
}

// Code returns the evdev KEY_* code for k.
func Code(k Key) (uint16, bool) {
	switch {
	case k.IsLetter():
		return letterCodes[k[0]-'A'], true
	case k.IsDigit():
		if k[0] == '0' {
			return 11, true
		}
		return uint16(k[0]-'1') + 2, true
	}
	if n, ok := functionIndex(k); ok {
		switch n {
		case 11:
			return 87, true
		case 12:
			return 88, true
		}
		return 58 + uint16(n), true
	}
	c, ok := platformCodes[k]
	return c, ok
}

// ModifierForCode reports which modifier an evdev code belongs to,
// covering both left and right variants.
func ModifierForCode(code uint16) (Modifier, bool) {
	if k, ok := rightModifiers[code]; ok {
		return modifierOf(k), true
	}
	for _, m := range []Modifier{Ctrl, Shift, Alt, Super} {
		if c, _ := Code(m.Key()); c == code {
			return m, true
		}
	}
	return 0, false
}

func modifierOf(k Key) Modifier {
	switch k {
	case KeyCtrl:
		return Ctrl
	case KeyShift:
		return Shift
	case KeyAlt:
		return Alt
	}
	return Super
}
