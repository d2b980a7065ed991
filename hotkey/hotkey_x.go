//go:build windows || darwin

package hotkey

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"promptline/shortcut"
)

type xHotkey struct {
	hk      *hotkey.Hotkey
	keydown chan struct{}
	keyup   chan struct{}
	stop    chan struct{}
	once    sync.Once
}

// New creates a hotkey using golang.design/x/hotkey (Win32 RegisterHotKey
// or Carbon). Registration fails when another application owns the chord.
func New(spec shortcut.Spec) (Hotkey, error) {
	code, ok := shortcut.Code(spec.Key)
	if !ok {
		return nil, fmt.Errorf("no key code for %s", spec.Key)
	}
	mods := make([]hotkey.Modifier, 0, len(spec.Modifiers))
	for _, m := range spec.Modifiers {
		mods = append(mods, modifierMap[m])
	}
	return &xHotkey{
		hk:      hotkey.New(mods, hotkey.Key(code)),
		keydown: make(chan struct{}, 1),
		keyup:   make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}, nil
}

func (h *xHotkey) Register() error {
	if err := h.hk.Register(); err != nil {
		return err
	}
	go h.forward(h.hk.Keydown(), h.keydown)
	go h.forward(h.hk.Keyup(), h.keyup)
	return nil
}

func (h *xHotkey) forward(in <-chan hotkey.Event, out chan struct{}) {
	for {
		select {
		case <-h.stop:
			return
		case <-in:
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}

func (h *xHotkey) Unregister() {
	h.once.Do(func() {
		close(h.stop)
		h.hk.Unregister()
	})
}

func (h *xHotkey) Keydown() <-chan struct{} {
	return h.keydown
}

func (h *xHotkey) Keyup() <-chan struct{} {
	return h.keyup
}

func Diagnose() (string, error) {
	return "hotkey support available (RegisterHotKey)", nil
}
