package hotkey

import (
	"errors"
	"sync"

	"promptline/shortcut"
)

type FakeHotkey struct {
	Spec    shortcut.Spec
	keydown chan struct{}
	keyup   chan struct{}
	err     error

	mu           sync.Mutex
	unregistered bool
}

func NewFake() *FakeHotkey {
	return &FakeHotkey{
		keydown: make(chan struct{}, 1),
		keyup:   make(chan struct{}, 1),
	}
}

func (f *FakeHotkey) Register() error { return f.err }

func (f *FakeHotkey) Unregister() {
	f.mu.Lock()
	f.unregistered = true
	f.mu.Unlock()
}

func (f *FakeHotkey) Unregistered() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unregistered
}

func (f *FakeHotkey) Keydown() <-chan struct{} { return f.keydown }
func (f *FakeHotkey) Keyup() <-chan struct{}   { return f.keyup }

func (f *FakeHotkey) SimKeydown() { f.keydown <- struct{}{} }
func (f *FakeHotkey) SimKeyup()   { f.keyup <- struct{}{} }

var errTaken = errors.New("hotkey already taken by another application")

// FakeOS hands out FakeHotkeys and refuses chords listed in Taken, keyed
// by canonical chord string.
type FakeOS struct {
	mu       sync.Mutex
	Taken    map[string]bool
	Attempts []string
	Issued   []*FakeHotkey
}

func (o *FakeOS) Factory(spec shortcut.Spec) (Hotkey, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Attempts = append(o.Attempts, spec.String())
	hk := NewFake()
	hk.Spec = spec
	if o.Taken[spec.String()] {
		hk.err = errTaken
	}
	o.Issued = append(o.Issued, hk)
	return hk, nil
}

// Last returns the most recently issued hotkey.
func (o *FakeOS) Last() *FakeHotkey {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.Issued) == 0 {
		return nil
	}
	return o.Issued[len(o.Issued)-1]
}
