// Package platform bundles the OS-specific pieces of the capture flow
// behind one interface.
package platform

import (
	"time"

	"promptline/foreground"
	"promptline/paste"
)

var ErrUnsupported = paste.ErrUnsupported

type Platform interface {
	// Replay injects the press/release sequence for shortcut.
	Replay(shortcut string) error
	// CaptureForeground names the process owning input focus, or "".
	CaptureForeground() string
	// TriggerSecondaryGesture presses chord after delay in the background.
	TriggerSecondaryGesture(chord string, delay time.Duration) error
}

// New returns the native platform, or an Unsupported one when keystroke
// injection cannot be set up here. The returned error says why.
func New() (Platform, error) {
	inj, err := paste.NewInjector()
	if err != nil {
		return Unsupported{}, err
	}
	return &Native{engine: paste.NewEngine(inj), capture: foreground.Capture}, nil
}

type Native struct {
	engine  *paste.Engine
	capture func() (string, bool)
}

// NewWithInjector builds a Native platform around a given injector.
func NewWithInjector(inj paste.Injector) *Native {
	return &Native{engine: paste.NewEngine(inj), capture: foreground.Capture}
}

func (n *Native) Replay(shortcut string) error {
	return n.engine.Replay(shortcut)
}

func (n *Native) CaptureForeground() string {
	name, _ := n.capture()
	return name
}

func (n *Native) TriggerSecondaryGesture(chord string, delay time.Duration) error {
	return n.engine.TriggerSecondaryGesture(chord, delay)
}

// Unsupported fails every injection with ErrUnsupported so callers can tell
// "not available here" from "tried and failed".
type Unsupported struct{}

func (Unsupported) Replay(string) error { return ErrUnsupported }

func (Unsupported) CaptureForeground() string { return "" }

func (Unsupported) TriggerSecondaryGesture(string, time.Duration) error { return ErrUnsupported }
