//go:build darwin

package shortcut

// macOS virtual key codes (Carbon kVK_*). They are layout-position based,
// which is what keybd_event and the hotkey package both expect.
var platformCodes = map[Key]uint16{
	KeyCtrl:      0x3B,
	KeyShift:     0x38,
	KeyAlt:       0x3A,
	KeySuper:     0x37,
	KeySpace:     0x31,
	KeyEnter:     0x24,
	KeyTab:       0x30,
	KeyEscape:    0x35,
	KeyBackspace: 0x33,
	KeyInsert:    0x72, // kVK_Help sits where Insert is on PC keyboards
	KeyDelete:    0x75,
	KeyHome:      0x73,
	KeyEnd:       0x77,
	KeyPageUp:    0x74,
	KeyPageDown:  0x79,
	KeyLeft:      0x7B,
	KeyRight:     0x7C,
	KeyDown:      0x7D,
	KeyUp:        0x7E,

	"A": 0x00, "S": 0x01, "D": 0x02, "F": 0x03, "H": 0x04, "G": 0x05,
	"Z": 0x06, "X": 0x07, "C": 0x08, "V": 0x09, "B": 0x0B, "Q": 0x0C,
	"W": 0x0D, "E": 0x0E, "R": 0x0F, "Y": 0x10, "T": 0x11, "O": 0x1F,
	"U": 0x20, "I": 0x22, "P": 0x23, "L": 0x25, "J": 0x26, "K": 0x28,
	"N": 0x2D, "M": 0x2E,

	"1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15, "6": 0x16, "5": 0x17,
	"9": 0x19, "7": 0x1A, "8": 0x1C, "0": 0x1D,

	"F1": 0x7A, "F2": 0x78, "F3": 0x63, "F4": 0x76, "F5": 0x60, "F6": 0x61,
	"F7": 0x62, "F8": 0x64, "F9": 0x65, "F10": 0x6D, "F11": 0x67, "F12": 0x6F,
}

// Code returns the kVK_* code for k.
func Code(k Key) (uint16, bool) {
	c, ok := platformCodes[k]
	return c, ok
}
