// Package doctor runs interactive checks of the capture-and-paste loop.
package doctor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"promptline/clipboard"
	"promptline/hotkey"
	"promptline/platform"
)

const sampleText = "promptline-doctor-test"

type Options struct {
	// Candidates are the launch chords, tried in order.
	Candidates []string
	// Paste is the chord replayed in the last check.
	Paste string

	Factory  hotkey.Factory
	Platform platform.Platform
	Copy     func(string) error
	Read     func() (string, error)

	In  io.Reader
	Out io.Writer
	// Interactive enables prompts, countdowns and waiting for key presses.
	Interactive bool

	HotkeyTimeout time.Duration
	Sleep         func(time.Duration)

	// Preflight checks the injection backend before the replay test.
	Preflight func() (string, error)
}

// DefaultOptions wires the real backends. Prompts are enabled only when
// stdin is a terminal.
func DefaultOptions(candidates []string, pasteChord string) Options {
	p, err := platform.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: keystroke injection: %v\n", err)
	}
	return Options{
		Candidates:    candidates,
		Paste:         pasteChord,
		Factory:       hotkey.New,
		Platform:      p,
		Copy:          clipboard.Copy,
		Read:          clipboard.Read,
		In:            os.Stdin,
		Out:           os.Stdout,
		Interactive:   term.IsTerminal(int(os.Stdin.Fd())),
		HotkeyTimeout: 10 * time.Second,
		Sleep:         time.Sleep,
		Preflight:     preflight,
	}
}

type doctor struct {
	Options
	in *bufio.Reader
}

// Run executes the checks and returns an exit code (0=all pass, 1=any fail).
func Run(opts Options) int {
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.HotkeyTimeout == 0 {
		opts.HotkeyTimeout = 10 * time.Second
	}
	d := &doctor{Options: opts, in: bufio.NewReader(opts.In)}
	if opts.Interactive {
		resetTerminal()
		setupInterruptHandler()
	}

	d.println("promptline doctor - interactive system diagnostics")
	d.println("==================================================")
	if !opts.Interactive {
		d.println("stdin is not a terminal; prompts are skipped")
	}

	checks := []func() bool{d.checkHotkey, d.checkClipboard, d.checkForeground, d.checkReplay}
	allPass := true
	for _, check := range checks {
		if !check() {
			allPass = false
		}
	}

	d.println()
	if allPass {
		d.println("All checks passed!")
		return 0
	}
	d.println("Some checks failed. See details above.")
	return 1
}

func (d *doctor) println(a ...any) { fmt.Fprintln(d.Out, a...) }

func (d *doctor) printf(format string, a ...any) { fmt.Fprintf(d.Out, format, a...) }

func (d *doctor) header(n int, title string) {
	d.println()
	d.printf("[%d/4] %s\n", n, title)
}

func (d *doctor) countdown(what string, secs int) {
	if !d.Interactive {
		return
	}
	d.println(what)
	for i := secs; i > 0; i-- {
		d.printf("  %d...\n", i)
		d.Sleep(time.Second)
	}
}

func (d *doctor) confirm(question string) bool {
	resetTerminal()
	d.printf("%s [y/n]: ", question)
	answer, _ := d.in.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}

func (d *doctor) checkHotkey() bool {
	d.header(1, "Hotkey registration")

	if d.Factory == nil {
		d.println("  FAIL: no hotkey backend")
		return false
	}
	if msg, err := hotkey.Diagnose(); err != nil {
		d.printf("  Warning: %v\n", err)
	} else {
		d.printf("  %s\n", msg)
	}

	r := hotkey.NewRegistrar(d.Factory)
	bound, err := r.Register(d.Candidates)
	if err != nil {
		d.printf("  FAIL: %v\n", err)
		return false
	}
	defer r.Close()
	d.printf("  registered %s\n", bound)

	if !d.Interactive {
		d.println("  PASS: hotkey registered (press not tested)")
		return true
	}

	d.printf("Press %s...\n", bound)
	pressed := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Listen(ctx, func() {
		select {
		case pressed <- struct{}{}:
		default:
		}
	})

	select {
	case <-pressed:
		// A global hotkey can leave the terminal in raw mode.
		resetTerminal()
		d.println("  PASS: hotkey detected")
		return true
	case <-time.After(d.HotkeyTimeout):
		d.println("  FAIL: timeout waiting for hotkey")
		return false
	}
}

func (d *doctor) checkClipboard() bool {
	d.header(2, "Clipboard write/read")

	want := fmt.Sprintf("%s-%d", sampleText, time.Now().UnixNano())
	type result struct {
		got   string
		err   error
		phase string
	}
	ch := make(chan result, 1)
	go func() {
		if err := d.Copy(want); err != nil {
			ch <- result{err: err, phase: "write"}
			return
		}
		got, err := d.Read()
		ch <- result{got: got, err: err, phase: "read"}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			d.printf("  FAIL: clipboard %s failed: %v\n", res.phase, res.err)
			return false
		}
		if res.got != want {
			d.printf("  FAIL: clipboard mismatch: wrote %q, got %q\n", want, res.got)
			return false
		}
		d.println("  PASS: clipboard write/read verified")
		return true
	case <-time.After(3 * time.Second):
		d.println("  FAIL: clipboard timed out (clipboard tool hung?)")
		return false
	}
}

func (d *doctor) checkForeground() bool {
	d.header(3, "Foreground process")
	d.countdown("Focus the window you paste into...", 3)

	name := d.Platform.CaptureForeground()
	if name == "" {
		d.println("  FAIL: foreground process not detected (overrides will not apply)")
		return false
	}
	d.printf("  PASS: foreground is %s\n", name)
	return true
}

func (d *doctor) checkReplay() bool {
	d.header(4, "Paste replay")

	if d.Preflight != nil {
		msg, err := d.Preflight()
		if err != nil {
			d.printf("  FAIL: %v\n", err)
			return false
		}
		d.printf("  %s\n", msg)
	}

	if !d.Interactive {
		d.println("  SKIP: needs a focused editor")
		return true
	}

	if err := d.Copy(sampleText); err != nil {
		d.printf("  FAIL: clipboard copy failed: %v\n", err)
		return false
	}
	d.countdown("Focus a text editor window...", 5)
	if err := d.Platform.Replay(d.Paste); err != nil {
		d.printf("  FAIL: replay of %s failed: %v\n", d.Paste, err)
		return false
	}

	d.println()
	if !d.confirm(fmt.Sprintf("Did the text %q appear?", sampleText)) {
		d.println("  FAIL: paste not confirmed")
		return false
	}
	d.println("  PASS: paste verified by user")
	return true
}
