//go:build windows

package shortcut

// Windows virtual-key codes.
var platformCodes = map[Key]uint16{
	KeyCtrl:      0x11,
	KeyShift:     0x10,
	KeyAlt:       0x12,
	KeySuper:     0x5B, // VK_LWIN
	KeySpace:     0x20,
	KeyEnter:     0x0D,
	KeyTab:       0x09,
	KeyEscape:    0x1B,
	KeyBackspace: 0x08,
	KeyInsert:    0x2D,
	KeyDelete:    0x2E,
	KeyHome:      0x24,
	KeyEnd:       0x23,
	KeyPageUp:    0x21,
	KeyPageDown:  0x22,
	KeyLeft:      0x25,
	KeyUp:        0x26,
	KeyRight:     0x27,
	KeyDown:      0x28,
}

// Code returns the VK_* code for k.
func Code(k Key) (uint16, bool) {
	switch {
	case k.IsLetter():
		return uint16(k[0]), true
	case k.IsDigit():
		return uint16(k[0]), true
	}
	if n, ok := functionIndex(k); ok {
		return 0x70 + uint16(n-1), true
	}
	c, ok := platformCodes[k]
	return c, ok
}
