package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"promptline/log"
)

// Records larger than this are skipped on load.
var maxLineBytes = 16 << 20

// FileLog stores entries as JSON Lines, one object per line.
type FileLog struct {
	path string
}

func NewFileLog(path string) (*FileLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &FileLog{path: path}, nil
}

func (f *FileLog) Path() string { return f.path }

// Load reads every well-formed line. Blank lines are ignored and malformed
// ones are logged and skipped.
func (f *FileLog) Load() ([]Entry, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	r := bufio.NewReader(file)
	for lineNo := 1; ; lineNo++ {
		raw, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return entries, readErr
		}
		if e, err := parseLine(raw); err != nil {
			log.Warnf("history: skipping line %d of %s: %v", lineNo, f.path, err)
		} else if e != nil {
			entries = append(entries, *e)
		}
		if readErr != nil {
			return entries, nil
		}
	}
}

// parseLine decodes one record. A blank line yields (nil, nil).
func parseLine(raw string) (*Entry, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil, nil
	}
	if len(line) > maxLineBytes {
		return nil, fmt.Errorf("record of %d bytes exceeds %d", len(line), maxLineBytes)
	}
	var e Entry
	if err := json.Unmarshal([]byte(line), &e); err != nil {
		return nil, err
	}
	if err := e.check(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Rewrite writes entries to a sibling temp file and renames it over the log.
func (f *FileLog) Rewrite(entries []Entry) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *FileLog) Truncate() error {
	return os.WriteFile(f.path, nil, 0644)
}

func (f *FileLog) Close() error { return nil }
