package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileLogMissingFileIsEmpty(t *testing.T) {
	l, err := NewFileLog(filepath.Join(t.TempDir(), "sub", "history.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	entries, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries", len(entries))
	}
}

func TestFileLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	l, err := NewFileLog(path)
	if err != nil {
		t.Fatal(err)
	}
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	in := []Entry{
		{Text: "first", Timestamp: ts},
		{Text: "multi\nline <b>&</b>", Timestamp: ts.Add(time.Minute)},
	}
	if err := l.Rewrite(in); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("file has %d lines, want 2:\n%s", n, data)
	}
	if !strings.Contains(string(data), `<b>&</b>`) {
		t.Errorf("html was escaped: %s", data)
	}

	out, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].Text != "first" || out[1].Text != in[1].Text || !out[1].Timestamp.Equal(in[1].Timestamp) {
		t.Errorf("round trip = %+v", out)
	}
}

func TestFileLogSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := `{"text":"good one","timestamp":"2024-01-15T10:30:00Z"}
not json at all

{"text":"good two","timestamp":"2024-01-15T10:31:00Z"}
{"text":"bad time","timestamp":"yesterday"}
{}
null
{"timestamp":"2024-01-15T10:32:00Z"}
{"text":"   ","timestamp":"2024-01-15T10:33:00Z"}
{"text":"no time"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	l, _ := NewFileLog(path)
	entries, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got := texts(entries); !equal(got, []string{"good one", "good two"}) {
		t.Errorf("loaded %v", got)
	}
}

func TestFileLogSkipsOversizedLine(t *testing.T) {
	old := maxLineBytes
	maxLineBytes = 64
	t.Cleanup(func() { maxLineBytes = old })

	path := filepath.Join(t.TempDir(), "history.jsonl")
	big := `{"text":"` + strings.Repeat("x", 200) + `","timestamp":"2024-01-15T10:30:00Z"}`
	content := big + "\n" + `{"text":"kept","timestamp":"2024-01-15T10:31:00Z"}` // no trailing newline
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	l, _ := NewFileLog(path)
	entries, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got := texts(entries); !equal(got, []string{"kept"}) {
		t.Errorf("loaded %v", got)
	}

	s, err := Open(l, 10)
	if err != nil {
		t.Fatalf("Open failed on oversized record: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("store holds %d entries", s.Len())
	}
}

func TestFileLogTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	l, _ := NewFileLog(path)
	l.Rewrite([]Entry{{Text: "x", Timestamp: time.Now().UTC()}})
	if err := l.Truncate(); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("size = %d after truncate", info.Size())
	}
}

func TestStoreOverFileLogPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	l, _ := NewFileLog(path)
	s := newStore(t, l, 2)
	s.Add("one")
	s.Add("two")
	s.Add("three")

	l2, _ := NewFileLog(path)
	s2 := newStore(t, l2, 2)
	if got := texts(s2.Entries()); !equal(got, []string{"three", "two"}) {
		t.Errorf("reloaded = %v", got)
	}
}

func TestNewLogUnknownBackend(t *testing.T) {
	if _, err := NewLog("redis", filepath.Join(t.TempDir(), "h")); err == nil {
		t.Error("expected error")
	}
}
