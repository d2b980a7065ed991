// Package shortcut parses human-readable key chords like "Ctrl+Shift+V"
// and resolves per-application paste overrides.
package shortcut

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyShortcut = errors.New("empty shortcut")
	ErrNoMainKey     = errors.New("no main key in shortcut")
	ErrUnknownKey    = errors.New("unknown key")
)

type Modifier int

const (
	Ctrl Modifier = iota
	Shift
	Alt
	Super
)

func (m Modifier) String() string {
	switch m {
	case Ctrl:
		return "Ctrl"
	case Shift:
		return "Shift"
	case Alt:
		return "Alt"
	case Super:
		return "Win"
	}
	return fmt.Sprintf("Modifier(%d)", int(m))
}

// Key returns the key symbol used when the modifier itself is pressed.
func (m Modifier) Key() Key {
	switch m {
	case Ctrl:
		return KeyCtrl
	case Shift:
		return KeyShift
	case Alt:
		return KeyAlt
	default:
		return KeySuper
	}
}

var modifierTokens = map[string]Modifier{
	"ctrl":    Ctrl,
	"control": Ctrl,
	"shift":   Shift,
	"alt":     Alt,
	"win":     Super,
	"super":   Super,
	"meta":    Super,
	"cmd":     Super,
	"command": Super,
}

// Spec is a parsed chord: modifiers in source order plus exactly one main key.
type Spec struct {
	Modifiers []Modifier
	Key       Key
}

func (s Spec) Has(m Modifier) bool {
	for _, x := range s.Modifiers {
		if x == m {
			return true
		}
	}
	return false
}

func (s Spec) String() string {
	parts := make([]string, 0, len(s.Modifiers)+1)
	for _, m := range s.Modifiers {
		parts = append(parts, m.String())
	}
	parts = append(parts, s.Key.Name())
	return strings.Join(parts, "+")
}

// Parse splits s on '+' and classifies each token. Every non-modifier
// token must be a known key; when several appear the last one is the main
// key.
func Parse(s string) (Spec, error) {
	if strings.TrimSpace(s) == "" {
		return Spec{}, ErrEmptyShortcut
	}

	var spec Spec
	found := false
	for _, tok := range strings.Split(s, "+") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if m, ok := modifierTokens[strings.ToLower(tok)]; ok {
			if !spec.Has(m) {
				spec.Modifiers = append(spec.Modifiers, m)
			}
			continue
		}
		k, ok := LookupKey(tok)
		if !ok {
			return Spec{}, fmt.Errorf("%w: %q", ErrUnknownKey, tok)
		}
		spec.Key, found = k, true
	}

	if !found {
		return Spec{}, fmt.Errorf("%w: %q", ErrNoMainKey, s)
	}
	return spec, nil
}

// MustParse is Parse for compile-time constants.
func MustParse(s string) Spec {
	spec, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return spec
}
