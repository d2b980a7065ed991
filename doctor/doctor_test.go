package doctor

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"promptline/hotkey"
	"promptline/paste"
	"promptline/platform"
)

type memClipboard struct{ text string }

func (m *memClipboard) Copy(s string) error   { m.text = s; return nil }
func (m *memClipboard) Read() (string, error) { return m.text, nil }

type stubPlatform struct {
	platform.Unsupported
	fg string
}

func (s stubPlatform) CaptureForeground() string { return s.fg }

func options(out *bytes.Buffer) Options {
	cb := &memClipboard{}
	return Options{
		Candidates: []string{"Ctrl+Shift+Space", "Alt+Space"},
		Paste:      "Ctrl+V",
		Factory:    (&hotkey.FakeOS{}).Factory,
		Platform:   stubPlatform{fg: "kitty"},
		Copy:       cb.Copy,
		Read:       cb.Read,
		In:         strings.NewReader(""),
		Out:        out,
		Sleep:      func(time.Duration) {},
	}
}

func TestRunNonInteractivePasses(t *testing.T) {
	var out bytes.Buffer
	if code := Run(options(&out)); code != 0 {
		t.Fatalf("exit %d:\n%s", code, out.String())
	}
	for _, want := range []string{"registered Ctrl+Shift+Space", "clipboard write/read verified", "foreground is kitty", "SKIP"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunReportsFailures(t *testing.T) {
	var out bytes.Buffer
	opts := options(&out)
	opts.Factory = (&hotkey.FakeOS{Taken: map[string]bool{"Ctrl+Shift+Space": true, "Alt+Space": true}}).Factory
	opts.Platform = stubPlatform{}
	opts.Read = func() (string, error) { return "", errors.New("no display") }

	if code := Run(opts); code != 1 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"[1/4]", "[4/4]", "clipboard read failed: no display", "foreground process not detected"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestInteractiveReplayConfirmed(t *testing.T) {
	var out bytes.Buffer
	opts := options(&out)
	inj := paste.NewFake()
	opts.Platform = platform.NewWithInjector(inj)
	opts.Interactive = true
	opts.In = strings.NewReader("y\n")

	d := &doctor{Options: opts}
	d.in = bufio.NewReader(opts.In)
	if !d.checkReplay() {
		t.Fatalf("replay check failed:\n%s", out.String())
	}
	if len(inj.Batches()) != 1 {
		t.Errorf("batches = %d", len(inj.Batches()))
	}
}

func TestPreflightFailure(t *testing.T) {
	var out bytes.Buffer
	opts := options(&out)
	opts.Preflight = func() (string, error) { return "", errors.New("uinput: permission denied") }
	if code := Run(opts); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), "permission denied") {
		t.Errorf("output:\n%s", out.String())
	}
}
