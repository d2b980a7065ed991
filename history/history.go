// Package history keeps the bounded log of submitted text.
package history

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultMaxEntries bounds the log when the config does not say otherwise.
const DefaultMaxEntries = 1000

var ErrStorage = errors.New("history storage")

type Entry struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// check reports why a loaded record cannot be an Entry, or nil. Both
// fields are required and text must not be blank.
func (e Entry) check() error {
	switch {
	case strings.TrimSpace(e.Text) == "":
		return errors.New("blank text")
	case e.Timestamp.IsZero():
		return errors.New("missing timestamp")
	}
	return nil
}

// Log is the durable backing for a Store. Rewrite replaces the whole log
// with entries, oldest first.
type Log interface {
	Load() ([]Entry, error)
	Rewrite(entries []Entry) error
	Truncate() error
	Close() error
}

// Store holds history entries in insertion order, bounded by max.
// The in-memory slice is authoritative; every mutation rewrites the log.
type Store struct {
	mu      sync.Mutex
	log     Log
	entries []Entry
	max     int
	now     func() time.Time
}

func Open(l Log, maxEntries int) (*Store, error) {
	if maxEntries < 1 {
		return nil, fmt.Errorf("max entries must be positive, got %d", maxEntries)
	}
	entries, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", ErrStorage, err)
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	return &Store{
		log:     l,
		entries: entries,
		max:     maxEntries,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Add appends text unless it is blank. On a write failure the entry stays
// in memory and the returned error wraps ErrStorage.
func (s *Store) Add(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, Entry{Text: text, Timestamp: s.now()})
	if over := len(s.entries) - s.max; over > 0 {
		s.entries = append(s.entries[:0:0], s.entries[over:]...)
	}
	if err := s.log.Rewrite(s.entries); err != nil {
		return fmt.Errorf("%w: write: %v", ErrStorage, err)
	}
	return nil
}

// Entries returns every entry, most recent first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reversed(s.entries, nil)
}

// Search returns entries containing query, case-insensitively, most recent
// first. A blank query matches everything.
func (s *Store) Search(query string) []Entry {
	if strings.TrimSpace(query) == "" {
		return s.Entries()
	}
	q := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	return reversed(s.entries, func(e Entry) bool {
		return strings.Contains(strings.ToLower(e.Text), q)
	})
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	if err := s.log.Truncate(); err != nil {
		return fmt.Errorf("%w: truncate: %v", ErrStorage, err)
	}
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) Max() int {
	return s.max
}

func (s *Store) Close() error {
	return s.log.Close()
}

func reversed(entries []Entry, keep func(Entry) bool) []Entry {
	out := make([]Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if keep == nil || keep(entries[i]) {
			out = append(out, entries[i])
		}
	}
	return out
}
