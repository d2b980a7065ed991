//go:build linux

package shortcut

import "testing"

func TestCodeLinux(t *testing.T) {
	for k, want := range map[Key]uint16{
		"A": 30, "V": 47, "Z": 44, "H": 35,
		"0": 11, "1": 2, "9": 10,
		"F1": 59, "F10": 68, "F11": 87, "F12": 88,
		KeyCtrl: 29, KeyShift: 42, KeySuper: 125,
		KeyInsert: 110, KeySpace: 57,
	} {
		got, ok := Code(k)
		if !ok || got != want {
			t.Errorf("Code(%q) = %d,%v want %d", k, got, ok, want)
		}
	}
}

func TestModifierForCode(t *testing.T) {
	for code, want := range map[uint16]Modifier{29: Ctrl, 97: Ctrl, 42: Shift, 54: Shift, 56: Alt, 100: Alt, 125: Super, 126: Super} {
		got, ok := ModifierForCode(code)
		if !ok || got != want {
			t.Errorf("ModifierForCode(%d) = %v,%v want %v", code, got, ok, want)
		}
	}
	if _, ok := ModifierForCode(30); ok {
		t.Error("KEY_A reported as modifier")
	}
}
