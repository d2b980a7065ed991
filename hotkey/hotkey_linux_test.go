//go:build linux

package hotkey

import (
	"encoding/binary"
	"testing"

	"promptline/shortcut"
)

// KEY_LEFTCTRL, KEY_LEFTSHIFT, KEY_RIGHTCTRL, KEY_SPACE
const (
	codeCtrl      = 29
	codeShift     = 42
	codeRightCtrl = 97
	codeSpace     = 57
)

func encode(evs ...inputEvent) []byte {
	buf := make([]byte, len(evs)*inputEventSize)
	for i, ev := range evs {
		b := buf[i*inputEventSize:]
		binary.LittleEndian.PutUint16(b[16:], ev.typ)
		binary.LittleEndian.PutUint16(b[18:], ev.code)
		binary.LittleEndian.PutUint32(b[20:], uint32(ev.value))
	}
	return buf
}

func key(code uint16, value int32) inputEvent {
	return inputEvent{typ: evKey, code: code, value: value}
}

func edges(t *testing.T, chord string, evs ...inputEvent) []int {
	t.Helper()
	spec, err := shortcut.Parse(chord)
	if err != nil {
		t.Fatal(err)
	}
	m, err := newChordMatcher(spec)
	if err != nil {
		t.Fatal(err)
	}
	var out []int
	decodeEvents(encode(evs...), func(ev inputEvent) {
		if e := m.feed(ev); e != 0 {
			out = append(out, e)
		}
	})
	return out
}

func TestChordMatcherPressRelease(t *testing.T) {
	got := edges(t, "Ctrl+Shift+Space",
		key(codeCtrl, 1), key(codeShift, 1),
		key(codeSpace, 1), key(codeSpace, 2), key(codeSpace, 0),
		key(codeShift, 0), key(codeCtrl, 0),
	)
	if len(got) != 2 || got[0] != 1 || got[1] != -1 {
		t.Errorf("edges = %v, want [1 -1]", got)
	}
}

func TestChordMatcherRequiresExactModifiers(t *testing.T) {
	if got := edges(t, "Ctrl+Space", key(codeCtrl, 1), key(codeShift, 1), key(codeSpace, 1)); len(got) != 0 {
		t.Errorf("extra modifier matched: %v", got)
	}
	if got := edges(t, "Ctrl+Shift+Space", key(codeCtrl, 1), key(codeSpace, 1)); len(got) != 0 {
		t.Errorf("missing modifier matched: %v", got)
	}
}

func TestChordMatcherRightModifier(t *testing.T) {
	got := edges(t, "Ctrl+Space", key(codeRightCtrl, 1), key(codeSpace, 1))
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("edges = %v", got)
	}
}

func TestChordMatcherBothSidesHeld(t *testing.T) {
	got := edges(t, "Ctrl+Space",
		key(codeCtrl, 1), key(codeRightCtrl, 1), key(codeCtrl, 0),
		key(codeSpace, 1),
	)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("right ctrl still held, edges = %v", got)
	}

	got = edges(t, "Ctrl+Space",
		key(codeCtrl, 1), key(codeRightCtrl, 1),
		key(codeRightCtrl, 0), key(codeCtrl, 0),
		key(codeSpace, 1),
	)
	if len(got) != 0 {
		t.Errorf("both released, edges = %v", got)
	}
}

func TestChordMatcherIgnoresOtherEvents(t *testing.T) {
	got := edges(t, "Ctrl+Space",
		key(codeCtrl, 1),
		inputEvent{typ: 4, code: codeSpace, value: 1}, // EV_MSC
		key(codeSpace, 1),
	)
	if len(got) != 1 {
		t.Errorf("edges = %v", got)
	}
}

func TestDecodeEventsDropsPartial(t *testing.T) {
	buf := encode(key(codeSpace, 1))
	n := 0
	decodeEvents(append(buf, 1, 2, 3), func(inputEvent) { n++ })
	if n != 1 {
		t.Errorf("decoded %d events", n)
	}
}
