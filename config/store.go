package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"promptline/log"
)

// Store holds the live configuration. Readers get an immutable snapshot;
// Reload swaps it only when the new file validates.
type Store struct {
	mu        sync.RWMutex
	path      string
	cur       *Config
	overrides []func(*Config)
}

func Open(path string) (*Store, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, cur: cfg}, nil
}

// NewStore wraps an already loaded config. Reload and Watch need a path.
func NewStore(path string, cfg *Config) *Store {
	return &Store{path: path, cur: cfg}
}

func (s *Store) Path() string { return s.path }

// Current returns the active snapshot. Callers must not modify it.
func (s *Store) Current() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Update replaces the snapshot with a modified copy.
func (s *Store) Update(fn func(c *Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := *s.cur
	fn(&next)
	s.cur = &next
}

// Override applies fn now and again after every Reload, so values set on
// the command line survive edits to the file.
func (s *Store) Override(fn func(c *Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = append(s.overrides, fn)
	next := *s.cur
	fn(&next)
	s.cur = &next
}

func (s *Store) Reload() error {
	cfg, err := Load(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	for _, fn := range s.overrides {
		fn(cfg)
	}
	s.cur = cfg
	s.mu.Unlock()
	return nil
}

// Watch reloads on every change to the config file until ctx ends. The
// directory is watched because editors often replace files by rename.
// The launch hotkey is bound once at startup and is not re-registered.
func (s *Store) Watch(ctx context.Context, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	target := filepath.Clean(s.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				log.Warnf("config reload skipped: %v", err)
				continue
			}
			log.Info("config reloaded")
			if onChange != nil {
				onChange(s.Current())
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("config watcher: %v", err)
		}
	}
}
