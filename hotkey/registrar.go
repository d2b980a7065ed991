package hotkey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"promptline/log"
	"promptline/shortcut"
)

var ErrRegistration = errors.New("no hotkey candidate could be registered")

type State int

const (
	Unregistered State = iota
	Registered
)

func (s State) String() string {
	if s == Registered {
		return "registered"
	}
	return "unregistered"
}

// Registrar binds the first chord the OS accepts out of an ordered list.
type Registrar struct {
	mu      sync.Mutex
	factory Factory
	state   State
	active  Hotkey
	bound   string
}

func NewRegistrar(f Factory) *Registrar {
	return &Registrar{factory: f}
}

// Register tries candidates strictly in order and stops at the first one
// that registers. An unparseable candidate counts as a failed attempt.
// It returns the bound chord in canonical form.
func (r *Registrar) Register(candidates []string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == Registered {
		return r.bound, fmt.Errorf("hotkey already registered as %s", r.bound)
	}

	var failures []string
	for i, c := range candidates {
		spec, err := shortcut.Parse(c)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%q: %v", c, err))
			continue
		}
		hk, err := r.factory(spec)
		if err == nil {
			err = hk.Register()
		}
		if err != nil {
			log.Warnf("hotkey %s unavailable: %v", spec, err)
			failures = append(failures, fmt.Sprintf("%s: %v", spec, err))
			continue
		}
		r.active = hk
		r.bound = spec.String()
		r.state = Registered
		log.HotkeyRegistered(r.bound, i+1)
		return r.bound, nil
	}

	if len(failures) == 0 {
		return "", fmt.Errorf("%w: no candidates given", ErrRegistration)
	}
	return "", fmt.Errorf("%w (%s)", ErrRegistration, strings.Join(failures, "; "))
}

func (r *Registrar) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Bound is the registered chord, or "" when unregistered.
func (r *Registrar) Bound() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bound
}

// Listen calls onPress for every keydown until ctx ends. It is the single
// receive loop for hotkey events and blocks.
func (r *Registrar) Listen(ctx context.Context, onPress func()) error {
	r.mu.Lock()
	hk := r.active
	r.mu.Unlock()
	if hk == nil {
		return fmt.Errorf("listen: %w", ErrRegistration)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hk.Keydown():
			onPress()
		case <-hk.Keyup():
		}
	}
}

func (r *Registrar) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		r.active.Unregister()
	}
	r.active = nil
	r.bound = ""
	r.state = Unregistered
}
