package draft

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	f := File{Path: filepath.Join(t.TempDir(), "sub", "draft.txt")}

	got, err := f.Load()
	if err != nil || got != "" {
		t.Fatalf("missing file: %q, %v", got, err)
	}

	if err := f.Save("half a thought\nsecond line"); err != nil {
		t.Fatal(err)
	}
	if got, _ := f.Load(); got != "half a thought\nsecond line" {
		t.Errorf("loaded %q", got)
	}

	if err := f.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(f.Path); !os.IsNotExist(err) {
		t.Errorf("file still present: %v", err)
	}
	if err := f.Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestSaveEmptyClears(t *testing.T) {
	f := File{Path: filepath.Join(t.TempDir(), "draft.txt")}
	f.Save("x")
	if err := f.Save(""); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(f.Path); !os.IsNotExist(err) {
		t.Error("empty save left a file behind")
	}
}
