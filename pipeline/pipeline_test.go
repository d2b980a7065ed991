package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"promptline/beep"
	"promptline/config"
	"promptline/history"
	"promptline/shortcut"
)

func init() { beep.Disable() }

// trace records collaborator calls in order.
type trace struct {
	mu    sync.Mutex
	calls []string
}

func (t *trace) add(format string, args ...any) {
	t.mu.Lock()
	t.calls = append(t.calls, fmt.Sprintf(format, args...))
	t.mu.Unlock()
}

func (t *trace) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.calls, " ")
}

type fakeConfig struct{ cfg *config.Config }

func (f fakeConfig) Current() *config.Config { return f.cfg }

type fakeHistory struct {
	tr      *trace
	err     error
	entries []history.Entry
}

func (h *fakeHistory) Add(text string) error {
	h.tr.add("history(%s)", text)
	if h.err != nil {
		return h.err
	}
	h.entries = append(h.entries, history.Entry{Text: text})
	return nil
}
func (h *fakeHistory) Entries() []history.Entry      { return h.entries }
func (h *fakeHistory) Search(string) []history.Entry { return nil }
func (h *fakeHistory) Clear() error                  { h.entries = nil; return nil }

type fakeClipboard struct {
	tr  *trace
	err error
}

func (c *fakeClipboard) Copy(text string) error {
	c.tr.add("copy(%s)", text)
	return c.err
}

type fakePlatform struct {
	tr        *trace
	fg        string
	replayErr error
}

func (p *fakePlatform) Replay(s string) error {
	p.tr.add("replay(%s)", s)
	return p.replayErr
}
func (p *fakePlatform) CaptureForeground() string {
	p.tr.add("capture")
	return p.fg
}
func (p *fakePlatform) TriggerSecondaryGesture(chord string, delay time.Duration) error {
	p.tr.add("gesture(%s,%v)", chord, delay)
	return nil
}

type fakeSurface struct {
	tr      *trace
	visible bool
	text    string
	failed  []error
}

func (s *fakeSurface) Show(draft string) { s.tr.add("show(%s)", draft); s.visible = true }
func (s *fakeSurface) Hide()             { s.tr.add("hide"); s.visible = false }
func (s *fakeSurface) Visible() bool     { return s.visible }
func (s *fakeSurface) Failed(err error)  { s.failed = append(s.failed, err) }
func (s *fakeSurface) Text() string      { return s.text }

type fakeDrafts struct{ text string }

func (d *fakeDrafts) Load() (string, error) { return d.text, nil }
func (d *fakeDrafts) Save(t string) error   { d.text = t; return nil }
func (d *fakeDrafts) Clear() error          { d.text = ""; return nil }

type rig struct {
	tr     *trace
	cfg    *config.Config
	hist   *fakeHistory
	clip   *fakeClipboard
	plat   *fakePlatform
	ui     *fakeSurface
	drafts *fakeDrafts
	p      *Pipeline
}

func newRig(t *testing.T) *rig {
	t.Helper()
	tr := &trace{}
	r := &rig{
		tr:     tr,
		cfg:    config.Default(),
		hist:   &fakeHistory{tr: tr},
		clip:   &fakeClipboard{tr: tr},
		plat:   &fakePlatform{tr: tr},
		ui:     &fakeSurface{tr: tr},
		drafts: &fakeDrafts{},
	}
	p, err := New(Options{
		Config:    fakeConfig{r.cfg},
		History:   r.hist,
		Clipboard: r.clip,
		Platform:  r.plat,
		Surface:   r.ui,
		Drafts:    r.drafts,
		Sleep:     func(d time.Duration) { tr.add("sleep(%v)", d) },
	})
	if err != nil {
		t.Fatal(err)
	}
	r.p = p
	return r
}

func TestSubmitOrder(t *testing.T) {
	r := newRig(t)
	r.plat.fg = "notepad.exe"
	r.p.Toggle()
	r.tr.calls = nil

	if err := r.p.Submit("hello"); err != nil {
		t.Fatal(err)
	}
	want := "history(hello) copy(hello) hide sleep(100ms) replay(Ctrl+V)"
	if got := r.tr.String(); got != want {
		t.Errorf("calls = %s\nwant    %s", got, want)
	}
	if r.p.Submits() != 1 {
		t.Errorf("submits = %d", r.p.Submits())
	}
}

func TestSubmitUsesOverride(t *testing.T) {
	r := newRig(t)
	r.plat.fg = "WezTerm-GUI.exe"
	r.p.Toggle()
	r.p.Submit("ls -la")
	if !strings.HasSuffix(r.tr.String(), "replay(Ctrl+Shift+V)") {
		t.Errorf("calls = %s", r.tr.String())
	}
}

func TestSubmitOverrideFromConfig(t *testing.T) {
	r := newRig(t)
	r.cfg.Behavior.AppOverrides = []shortcut.Override{{ProcessName: "code", Shortcut: "Shift+Insert"}}
	r.plat.fg = "code"
	r.p.Toggle()
	r.p.Submit("x")
	if !strings.HasSuffix(r.tr.String(), "replay(Shift+Insert)") {
		t.Errorf("calls = %s", r.tr.String())
	}
}

func TestClipboardFailureSkipsReplay(t *testing.T) {
	r := newRig(t)
	r.clip.err = errors.New("clipboard busy")
	r.drafts.text = "kept"

	err := r.p.Submit("hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(r.tr.String(), "replay") || strings.Contains(r.tr.String(), "sleep") {
		t.Errorf("replayed after clipboard failure: %s", r.tr.String())
	}
	if r.ui.visible {
		t.Error("surface left visible")
	}
	if len(r.ui.failed) != 1 {
		t.Errorf("failures surfaced = %v", r.ui.failed)
	}
	if len(r.hist.entries) != 1 {
		t.Error("history must be recorded before the copy")
	}
	if r.drafts.text != "kept" {
		t.Error("draft cleared although nothing was sent")
	}
}

func TestHistoryFailureContinues(t *testing.T) {
	r := newRig(t)
	r.hist.err = fmt.Errorf("%w: disk full", history.ErrStorage)

	err := r.p.Submit("hello")
	if !errors.Is(err, history.ErrStorage) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(r.tr.String(), "replay(Ctrl+V)") {
		t.Errorf("cycle stopped after history failure: %s", r.tr.String())
	}
}

func TestReplayFailureJoined(t *testing.T) {
	r := newRig(t)
	r.hist.err = history.ErrStorage
	r.plat.replayErr = errors.New("injection blocked")

	err := r.p.Submit("hello")
	if !errors.Is(err, history.ErrStorage) || !errors.Is(err, r.plat.replayErr) {
		t.Errorf("err = %v", err)
	}
	if len(r.ui.failed) != 2 {
		t.Errorf("failures surfaced = %d", len(r.ui.failed))
	}
}

func TestBlankSubmitIsNoop(t *testing.T) {
	r := newRig(t)
	for _, text := range []string{"", "   ", "\n\t"} {
		if err := r.p.Submit(text); err != nil {
			t.Fatal(err)
		}
	}
	if r.tr.String() != "" {
		t.Errorf("calls = %s", r.tr.String())
	}
}

func TestAutoPasteOff(t *testing.T) {
	r := newRig(t)
	r.cfg.Behavior.AutoPaste = false
	r.p.Submit("hello")
	if got := r.tr.String(); got != "history(hello) copy(hello) hide" {
		t.Errorf("calls = %s", got)
	}
}

func TestToggleCapturesAndShowsDraft(t *testing.T) {
	r := newRig(t)
	r.plat.fg = "firefox"
	r.drafts.text = "unfinished"

	r.p.Toggle()
	if got := r.tr.String(); got != "capture show(unfinished)" {
		t.Errorf("calls = %s", got)
	}
	if r.p.Snapshot() != "firefox" {
		t.Errorf("snapshot = %q", r.p.Snapshot())
	}
}

func TestToggleVisibleDismissesWithText(t *testing.T) {
	r := newRig(t)
	r.p.Toggle()
	r.ui.text = "typed so far"
	r.tr.calls = nil

	r.p.Toggle()
	if got := r.tr.String(); got != "hide" {
		t.Errorf("calls = %s", got)
	}
	if r.drafts.text != "typed so far" {
		t.Errorf("draft = %q", r.drafts.text)
	}
}

func TestToggleTriggersVoiceGesture(t *testing.T) {
	r := newRig(t)
	r.cfg.Behavior.VoiceInput = true
	r.p.Toggle()
	if !strings.HasSuffix(r.tr.String(), "gesture(Win+H,300ms)") {
		t.Errorf("calls = %s", r.tr.String())
	}
}

func TestSubmitClearsDraft(t *testing.T) {
	r := newRig(t)
	r.drafts.text = "old"
	r.p.Submit("new")
	if r.drafts.text != "" {
		t.Errorf("draft = %q", r.drafts.text)
	}
}

func TestDismissSavesDraft(t *testing.T) {
	r := newRig(t)
	r.p.Toggle()
	r.p.Dismiss("later")
	if r.drafts.text != "later" || r.ui.visible {
		t.Errorf("draft=%q visible=%v", r.drafts.text, r.ui.visible)
	}
}

func TestNoSurfaceAttached(t *testing.T) {
	tr := &trace{}
	p, err := New(Options{
		Config:    fakeConfig{config.Default()},
		History:   &fakeHistory{tr: tr},
		Clipboard: &fakeClipboard{tr: tr},
		Sleep:     func(time.Duration) {},
	})
	if err != nil {
		t.Fatal(err)
	}
	p.Toggle()
	// Unsupported platform: replay fails but the text is still copied.
	if err := p.Submit("x"); err == nil {
		t.Error("expected unsupported error")
	}
	if !strings.Contains(tr.String(), "copy(x)") {
		t.Errorf("calls = %s", tr.String())
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("empty options accepted")
	}
}
