// Package pipeline runs one capture cycle: remember where the user was,
// take their text, store it, put it on the clipboard and paste it back.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"promptline/beep"
	"promptline/config"
	"promptline/history"
	"promptline/log"
	"promptline/platform"
	"promptline/shortcut"
)

type ConfigSource interface {
	Current() *config.Config
}

type History interface {
	Add(text string) error
	Entries() []history.Entry
	Search(query string) []history.Entry
	Clear() error
}

type Clipboard interface {
	Copy(text string) error
}

type Drafts interface {
	Load() (string, error)
	Save(text string) error
	Clear() error
}

// Surface is the capture UI. Implementations must be safe to call from any
// goroutine.
type Surface interface {
	Show(draft string)
	Hide()
	Visible() bool
	Failed(err error)
}

// Texter is implemented by surfaces that can report their unsent text, so a
// toggle-to-hide keeps it as the draft.
type Texter interface {
	Text() string
}

type Options struct {
	Config    ConfigSource
	History   History
	Clipboard Clipboard
	Platform  platform.Platform
	Surface   Surface
	Drafts    Drafts

	// Sleep waits out the settle delay. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

type Pipeline struct {
	cfg      ConfigSource
	hist     History
	clip     Clipboard
	platform platform.Platform
	drafts   Drafts
	sleep    func(time.Duration)

	surfaceMu sync.RWMutex
	surface   Surface

	snapMu   sync.Mutex
	snapshot string

	draftMu sync.Mutex

	submits atomic.Int64
}

func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil || opts.History == nil || opts.Clipboard == nil {
		return nil, fmt.Errorf("pipeline: missing collaborator")
	}
	p := &Pipeline{
		cfg:      opts.Config,
		hist:     opts.History,
		clip:     opts.Clipboard,
		platform: opts.Platform,
		surface:  opts.Surface,
		drafts:   opts.Drafts,
		sleep:    opts.Sleep,
	}
	if p.platform == nil {
		p.platform = platform.Unsupported{}
	}
	if p.sleep == nil {
		p.sleep = time.Sleep
	}
	return p, nil
}

// SetSurface attaches the UI after construction; surfaces usually need the
// pipeline before they exist.
func (p *Pipeline) SetSurface(s Surface) {
	p.surfaceMu.Lock()
	p.surface = s
	p.surfaceMu.Unlock()
}

func (p *Pipeline) ui() Surface {
	p.surfaceMu.RLock()
	defer p.surfaceMu.RUnlock()
	if p.surface == nil {
		return nopSurface{}
	}
	return p.surface
}

// Toggle is the hotkey handler. A visible surface is dismissed; otherwise
// the foreground process is remembered and the surface shown with the saved
// draft.
func (p *Pipeline) Toggle() {
	s := p.ui()
	if s.Visible() {
		text := ""
		if t, ok := s.(Texter); ok {
			text = t.Text()
		}
		p.Dismiss(text)
		return
	}

	// Capture may spawn a helper process; no lock is held across it.
	fg := p.platform.CaptureForeground()
	p.snapMu.Lock()
	p.snapshot = fg
	p.snapMu.Unlock()

	draft := p.loadDraft()
	s.Show(draft)
	beep.PlayShow()

	cfg := p.cfg.Current()
	if cfg.Behavior.VoiceInput {
		if err := p.platform.TriggerSecondaryGesture(cfg.Behavior.VoiceInputShortcut, cfg.VoiceInputDelay()); err != nil {
			log.Warnf("voice input gesture: %v", err)
		}
	}
}

// Snapshot is the foreground process captured by the last Toggle.
func (p *Pipeline) Snapshot() string {
	p.snapMu.Lock()
	defer p.snapMu.Unlock()
	return p.snapshot
}

// Submit stores text, copies it and, with auto paste on, replays the paste
// shortcut into the remembered process. A history failure does not stop
// the cycle; a clipboard failure stops it before anything is pasted.
func (p *Pipeline) Submit(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	start := time.Now()
	s := p.ui()
	var errs []error

	if err := p.hist.Add(text); err != nil {
		p.report(err)
		errs = append(errs, err)
	}

	if err := p.clip.Copy(text); err != nil {
		s.Hide()
		p.report(err)
		return errors.Join(append(errs, err)...)
	}

	p.clearDraft()
	s.Hide()
	p.submits.Add(1)

	cfg := p.cfg.Current()
	fg := p.Snapshot()
	chord := ""
	if cfg.Behavior.AutoPaste {
		chord = shortcut.Resolve(fg, cfg.Behavior.AppOverrides, cfg.Behavior.SimulatePasteShortcut)
		// The target window needs to regain focus before keys arrive.
		p.sleep(cfg.SettleDelay())
		if err := p.platform.Replay(chord); err != nil {
			p.report(err)
			errs = append(errs, err)
		}
	}

	log.Submit(len([]rune(text)), fg, chord, time.Since(start))
	return errors.Join(errs...)
}

// Dismiss keeps text as the draft and hides the surface.
func (p *Pipeline) Dismiss(text string) {
	p.saveDraft(text)
	p.ui().Hide()
}

func (p *Pipeline) Search(query string) []history.Entry { return p.hist.Search(query) }

func (p *Pipeline) Entries() []history.Entry { return p.hist.Entries() }

func (p *Pipeline) ClearHistory() error {
	if err := p.hist.Clear(); err != nil {
		p.report(err)
		return err
	}
	return nil
}

// Submits counts completed cycles for the session summary.
func (p *Pipeline) Submits() int { return int(p.submits.Load()) }

func (p *Pipeline) report(err error) {
	log.Errorf("%v", err)
	p.ui().Failed(err)
	beep.PlayError()
}

func (p *Pipeline) loadDraft() string {
	if p.drafts == nil {
		return ""
	}
	p.draftMu.Lock()
	defer p.draftMu.Unlock()
	d, err := p.drafts.Load()
	if err != nil {
		log.Warnf("draft: %v", err)
		return ""
	}
	return d
}

func (p *Pipeline) saveDraft(text string) {
	if p.drafts == nil {
		return
	}
	p.draftMu.Lock()
	defer p.draftMu.Unlock()
	if err := p.drafts.Save(text); err != nil {
		log.Warnf("draft: %v", err)
	}
}

func (p *Pipeline) clearDraft() {
	if p.drafts == nil {
		return
	}
	p.draftMu.Lock()
	defer p.draftMu.Unlock()
	if err := p.drafts.Clear(); err != nil {
		log.Warnf("draft: %v", err)
	}
}

type nopSurface struct{}

func (nopSurface) Show(string)   {}
func (nopSurface) Hide()         {}
func (nopSurface) Visible() bool { return false }
func (nopSurface) Failed(error)  {}
