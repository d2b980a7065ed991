package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"promptline/config"
)

// Surface runs the bubbletea program and implements pipeline.Surface.
type Surface struct {
	prog   *tea.Program
	shared *shared
}

func New(b Backend, cfg *config.Config, opts ...tea.ProgramOption) *Surface {
	sh := &shared{}
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return &Surface{
		prog:   tea.NewProgram(newModel(b, cfg, sh), opts...),
		shared: sh,
	}
}

// Run blocks until the user quits or ctx ends.
func (s *Surface) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.prog.Quit()
	}()
	_, err := s.prog.Run()
	return err
}

func (s *Surface) Quit() { s.prog.Quit() }

// SetHotkey shows the bound launch chord in the idle view.
func (s *Surface) SetHotkey(chord string) { s.prog.Send(hotkeyMsg{chord: chord}) }

func (s *Surface) Show(draft string) {
	s.shared.visible.Store(true)
	s.prog.Send(showMsg{draft: draft})
}

func (s *Surface) Hide() {
	s.shared.visible.Store(false)
	s.prog.Send(hideMsg{})
}

func (s *Surface) Visible() bool { return s.shared.visible.Load() }

func (s *Surface) Failed(err error) { s.prog.Send(failedMsg{err: err}) }

// Text is the unsent text in the editor.
func (s *Surface) Text() string {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	return s.shared.text
}
