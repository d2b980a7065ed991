package shortcut

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		mods []Modifier
		key  Key
	}{
		{"Ctrl+V", []Modifier{Ctrl}, "V"},
		{"Ctrl+Shift+V", []Modifier{Ctrl, Shift}, "V"},
		{"shift + ctrl + v", []Modifier{Shift, Ctrl}, "V"},
		{"Control+Insert", []Modifier{Ctrl}, KeyInsert},
		{"Shift+Ins", []Modifier{Shift}, KeyInsert},
		{"Win+H", []Modifier{Super}, "H"},
		{"Cmd+V", []Modifier{Super}, "V"},
		{"Meta+Space", []Modifier{Super}, KeySpace},
		{"Alt+F4", []Modifier{Alt}, "F4"},
		{"Ctrl+Return", []Modifier{Ctrl}, KeyEnter},
		{"Escape", nil, KeyEscape},
		{"esc", nil, KeyEscape},
		{"Ctrl+Alt+P", []Modifier{Ctrl, Alt}, "P"},
		{"Ctrl+A+B", []Modifier{Ctrl}, "B"},
		{"Ctrl+Ctrl+V", []Modifier{Ctrl}, "V"},
		{"Ctrl+7", []Modifier{Ctrl}, "7"},
		{"PgDn", nil, KeyPageDown},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got.Modifiers, tt.mods) {
			t.Errorf("Parse(%q) modifiers = %v, want %v", tt.in, got.Modifiers, tt.mods)
		}
		if got.Key != tt.key {
			t.Errorf("Parse(%q) key = %q, want %q", tt.in, got.Key, tt.key)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrEmptyShortcut},
		{"   ", ErrEmptyShortcut},
		{"Ctrl+Shift", ErrNoMainKey},
		{"Ctrl+", ErrNoMainKey},
		{"+", ErrNoMainKey},
		{"Ctrl+Banana", ErrUnknownKey},
		{"F13", ErrUnknownKey},
		{"F01", ErrUnknownKey},
		{"Foo+V", ErrUnknownKey},
		{"Ctrl+Bogus+V", ErrUnknownKey},
		{"V+Bogus", ErrUnknownKey},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) err = %v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestSpecString(t *testing.T) {
	for in, want := range map[string]string{
		"ctrl+shift+v": "Ctrl+Shift+V",
		"super+h":      "Win+H",
		"alt+pgup":     "Alt+PageUp",
		"f12":          "F12",
	} {
		got := MustParse(in).String()
		if got != want {
			t.Errorf("String(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, in := range []string{"Ctrl+Shift+V", "Win+H", "Alt+F4", "Ctrl+Enter", "Shift+Insert"} {
		spec := MustParse(in)
		again, err := Parse(spec.String())
		if err != nil {
			t.Fatalf("reparse %q: %v", spec.String(), err)
		}
		if !reflect.DeepEqual(spec, again) {
			t.Errorf("%q: round trip %v != %v", in, again, spec)
		}
	}
}

func TestModifierNamesAreNotMainKeys(t *testing.T) {
	for _, tok := range []string{"CTRL", "SUPER", "Alt"} {
		if _, ok := LookupKey(tok); ok {
			t.Errorf("LookupKey(%q) accepted a modifier", tok)
		}
	}
}
