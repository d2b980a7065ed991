// Package draft persists unsent text between captures.
package draft

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File keeps the draft in a single plain-text file.
type File struct {
	Path string
}

// Load returns the saved draft. A missing file is an empty draft.
func (f File) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read draft: %w", err)
	}
	return string(data), nil
}

// Save stores text; blank text removes the file instead.
func (f File) Save(text string) error {
	if text == "" {
		return f.Clear()
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return fmt.Errorf("create draft dir: %w", err)
	}
	if err := os.WriteFile(f.Path, []byte(text), 0600); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	return nil
}

func (f File) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
