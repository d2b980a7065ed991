//go:build darwin

package paste

import (
	"fmt"
	"sync"

	"github.com/micmonay/keybd_event"

	"promptline/shortcut"
)

var (
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
	kbMu   sync.Mutex
)

// CGEvent carries modifiers as flags on the key event rather than as
// separate key presses, so modifier events only update the flag state.
type cgInjector struct{}

func NewInjector() (Injector, error) {
	kbOnce.Do(func() {
		kb, kbErr = keybd_event.NewKeyBonding()
	})
	if kbErr != nil {
		return nil, kbErr
	}
	return cgInjector{}, nil
}

func (cgInjector) Inject(events []Event) (int, error) {
	kbMu.Lock()
	defer kbMu.Unlock()

	held := map[shortcut.Key]bool{}
	for i, ev := range events {
		if ev.Key.IsModifier() {
			held[ev.Key] = !ev.Up
			continue
		}
		code, ok := shortcut.Code(ev.Key)
		if !ok {
			return i, fmt.Errorf("no key code for %s", ev.Key)
		}
		kb.Clear()
		kb.SetKeys(int(code))
		kb.HasCTRL(held[shortcut.KeyCtrl])
		kb.HasSHIFT(held[shortcut.KeyShift])
		kb.HasALT(held[shortcut.KeyAlt])
		kb.HasSuper(held[shortcut.KeySuper])
		var err error
		if ev.Up {
			err = kb.Release()
		} else {
			err = kb.Press()
		}
		if err != nil {
			return i, err
		}
	}
	return len(events), nil
}
