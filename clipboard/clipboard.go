// Package clipboard hands submitted text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	cb "github.com/atotto/clipboard"
)

var ErrClipboard = errors.New("clipboard")

// Swapped out in tests. On Windows atotto pins the OS thread for the whole
// OpenClipboard/CloseClipboard session.
var (
	writeAll = cb.WriteAll
	readAll  = cb.ReadAll
)

// One writer at a time; the OS clipboard is a process-wide resource.
var mu sync.Mutex

// Copy clears the clipboard, then sets text. A failure in either step
// means the clipboard contents are unknown.
func Copy(text string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := writeAll(""); err != nil {
		return fmt.Errorf("%w: clear: %v", ErrClipboard, err)
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("%w: set: %v", ErrClipboard, err)
	}
	return nil
}

// Read returns the current clipboard text.
func Read() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	s, err := readAll()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return s, nil
}

// Bridge adapts the package functions to an interface value.
type Bridge struct{}

func (Bridge) Copy(text string) error { return Copy(text) }
