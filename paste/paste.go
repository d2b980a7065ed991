// Package paste replays key chords into the focused application.
package paste

import (
	"errors"
	"fmt"
	"time"

	"promptline/log"
	"promptline/shortcut"
)

var (
	ErrInjection   = errors.New("keystroke injection rejected")
	ErrUnsupported = errors.New("keystroke injection unsupported on this platform")
)

// Gesture timing: gap after force-releasing modifiers and between chord steps.
const gestureStep = 50 * time.Millisecond

type Event struct {
	Key shortcut.Key
	Up  bool
}

func (e Event) String() string {
	if e.Up {
		return string(e.Key) + "-up"
	}
	return string(e.Key) + "-down"
}

// Sequence expands a chord into press/release events: modifiers down in
// order, main key down then up, modifiers up in reverse.
func Sequence(spec shortcut.Spec) []Event {
	events := make([]Event, 0, 2*len(spec.Modifiers)+2)
	for _, m := range spec.Modifiers {
		events = append(events, Event{Key: m.Key()})
	}
	events = append(events, Event{Key: spec.Key}, Event{Key: spec.Key, Up: true})
	for i := len(spec.Modifiers) - 1; i >= 0; i-- {
		events = append(events, Event{Key: spec.Modifiers[i].Key(), Up: true})
	}
	return events
}

// Injector submits synthetic key events to the OS and reports how many
// were accepted.
type Injector interface {
	Inject(events []Event) (int, error)
}

type Engine struct {
	inj   Injector
	sleep func(time.Duration)
}

func NewEngine(inj Injector) *Engine {
	return &Engine{inj: inj, sleep: time.Sleep}
}

// Replay parses s and injects its full press/release sequence as one batch.
func (e *Engine) Replay(s string) error {
	spec, err := shortcut.Parse(s)
	if err != nil {
		return err
	}
	events := Sequence(spec)
	err = e.inject(events)
	log.Replay(spec.String(), len(events), err)
	return err
}

func (e *Engine) inject(events []Event) error {
	if e.inj == nil {
		return ErrUnsupported
	}
	n, err := e.inj.Inject(events)
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInjection, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: 0 of %d events accepted", ErrInjection, len(events))
	}
	if n < len(events) {
		log.Warnf("paste: only %d of %d events accepted", n, len(events))
	}
	return nil
}

var heldModifiers = []Event{
	{Key: shortcut.KeyCtrl, Up: true},
	{Key: shortcut.KeyShift, Up: true},
	{Key: shortcut.KeyAlt, Up: true},
}

// TriggerSecondaryGesture parses chord now, then in the background waits
// delay, force-releases Ctrl, Shift and Alt, and presses the chord one event
// at a time. Background failures are logged and otherwise dropped: the
// gesture is an add-on to the capture flow and has no caller left to tell.
func (e *Engine) TriggerSecondaryGesture(chord string, delay time.Duration) error {
	spec, err := shortcut.Parse(chord)
	if err != nil {
		return err
	}
	if e.inj == nil {
		return ErrUnsupported
	}
	go func() {
		if err := e.runGesture(spec, delay); err != nil {
			log.Warnf("secondary gesture %s: %v", spec, err)
		}
	}()
	return nil
}

func (e *Engine) runGesture(spec shortcut.Spec, delay time.Duration) error {
	e.sleep(delay)
	if err := e.inject(heldModifiers); err != nil {
		return fmt.Errorf("release modifiers: %w", err)
	}
	for _, ev := range Sequence(spec) {
		e.sleep(gestureStep)
		if err := e.inject([]Event{ev}); err != nil {
			return fmt.Errorf("%s: %w", ev, err)
		}
	}
	return nil
}
