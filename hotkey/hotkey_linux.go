//go:build linux

package hotkey

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"promptline/shortcut"
)

const (
	inputDir   = "/dev/input"
	sysfsInput = "/sys/class/input"

	// struct input_event on 64-bit: timeval(16) type(2) code(2) value(4)
	inputEventSize = 24
	evKey          = 1
)

const groupHint = "run: sudo usermod -aG input $USER, then log in again"

type inputEvent struct {
	typ   uint16
	code  uint16
	value int32 // 0 release, 1 press, 2 autorepeat
}

// decodeEvents calls fn for every whole event in buf.
func decodeEvents(buf []byte, fn func(inputEvent)) {
	for i := 0; i+inputEventSize <= len(buf); i += inputEventSize {
		fn(inputEvent{
			typ:   binary.LittleEndian.Uint16(buf[i+16:]),
			code:  binary.LittleEndian.Uint16(buf[i+18:]),
			value: int32(binary.LittleEndian.Uint32(buf[i+20:])),
		})
	}
}

// chordMatcher tracks modifier state for one device and reports edges of
// the chord. Held modifiers must equal the chord's set exactly.
type chordMatcher struct {
	want [4]bool
	code uint16
	// per modifier: bit 0 is the left key, bit 1 the right
	held [4]uint8
	down bool
}

func newChordMatcher(spec shortcut.Spec) (chordMatcher, error) {
	code, ok := shortcut.Code(spec.Key)
	if !ok {
		return chordMatcher{}, fmt.Errorf("no evdev code for %s", spec.Key)
	}
	m := chordMatcher{code: code}
	for _, mod := range spec.Modifiers {
		m.want[mod] = true
	}
	return m, nil
}

// feed returns +1 on chord press, -1 on its release and 0 otherwise.
func (m *chordMatcher) feed(ev inputEvent) int {
	if ev.typ != evKey {
		return 0
	}
	if mod, ok := shortcut.ModifierForCode(ev.code); ok {
		side := uint8(1)
		if left, _ := shortcut.Code(mod.Key()); left != ev.code {
			side = 2
		}
		switch ev.value {
		case 1:
			m.held[mod] |= side
		case 0:
			m.held[mod] &^= side
		}
		return 0
	}
	if ev.code != m.code {
		return 0
	}
	switch {
	case ev.value == 1 && !m.down && m.modifiersMatch():
		m.down = true
		return 1
	case ev.value == 0 && m.down:
		m.down = false
		return -1
	}
	return 0
}

func (m *chordMatcher) modifiersMatch() bool {
	for i, want := range m.want {
		if (m.held[i] != 0) != want {
			return false
		}
	}
	return true
}

// linuxHotkey reads /dev/input directly, so it works under X11 and Wayland
// but needs the user in the 'input' group. evdev has no notion of a chord
// being taken; every reader sees every key.
type linuxHotkey struct {
	matcher chordMatcher
	keydown chan struct{}
	keyup   chan struct{}
	files   []*os.File
	stop    chan struct{}
	once    sync.Once
}

func New(spec shortcut.Spec) (Hotkey, error) {
	m, err := newChordMatcher(spec)
	if err != nil {
		return nil, err
	}
	return &linuxHotkey{
		matcher: m,
		keydown: make(chan struct{}, 1),
		keyup:   make(chan struct{}, 1),
	}, nil
}

func (h *linuxHotkey) Register() error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (%s)", groupHint)
	}

	h.stop = make(chan struct{})
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		h.files = append(h.files, f)
		go h.read(f, h.matcher)
	}
	if len(h.files) == 0 {
		return fmt.Errorf("cannot open any of %d keyboard(s) (%s)", len(keyboards), groupHint)
	}
	return nil
}

// read runs per device with its own copy of the matcher.
func (h *linuxHotkey) read(f *os.File, m chordMatcher) {
	buf := make([]byte, inputEventSize*16)
	for {
		select {
		case <-h.stop:
			return
		default:
		}
		n, err := f.Read(buf)
		if err != nil {
			return
		}
		decodeEvents(buf[:n], func(ev inputEvent) {
			switch m.feed(ev) {
			case 1:
				notify(h.keydown)
			case -1:
				notify(h.keyup)
			}
		})
	}
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (h *linuxHotkey) Unregister() {
	h.once.Do(func() {
		if h.stop != nil {
			close(h.stop)
		}
		for _, f := range h.files {
			f.Close()
		}
	})
}

func (h *linuxHotkey) Keydown() <-chan struct{} { return h.keydown }
func (h *linuxHotkey) Keyup() <-chan struct{}   { return h.keyup }

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "event") && isKeyboard(e.Name()) {
			out = append(out, filepath.Join(inputDir, e.Name()))
		}
	}
	return out, nil
}

// isKeyboard treats devices with a long key capability bitmap as keyboards.
// Mice and power buttons report only a few bits.
func isKeyboard(event string) bool {
	data, err := os.ReadFile(filepath.Join(sysfsInput, event, "device", "capabilities", "key"))
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(data))) > 10
}

// Diagnose reports whether at least one keyboard device can be opened.
func Diagnose() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (%s)", groupHint)
	}
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		f.Close()
		return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), path), nil
	}
	return "", fmt.Errorf("found %d keyboard(s) but cannot open any (%s)", len(keyboards), groupHint)
}
