// Package tui is the terminal capture surface.
package tui

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"promptline/config"
	"promptline/history"
)

// Backend is what the surface drives; *pipeline.Pipeline satisfies it.
type Backend interface {
	Submit(text string) error
	Dismiss(text string)
	Entries() []history.Entry
	Search(query string) []history.Entry
}

// Messages sent into the program from other goroutines.
type showMsg struct{ draft string }
type hideMsg struct{}
type failedMsg struct{ err error }
type hotkeyMsg struct{ chord string }
type submittedMsg struct{ err error }

// shared mirrors model state that the pipeline reads from outside the
// bubbletea loop.
type shared struct {
	visible atomic.Bool
	mu      sync.Mutex
	text    string
}

func (s *shared) setText(t string) {
	s.mu.Lock()
	s.text = t
	s.mu.Unlock()
}

type state int

const (
	stateIdle state = iota
	stateCapture
	stateSearch
)

type model struct {
	backend Backend
	window  config.Window
	keys    keyMap
	shared  *shared

	state   state
	input   textarea.Model
	query   textinput.Model
	help    help.Model
	width   int
	status  string
	failed  bool
	hotkey  string
	submits int

	// recall position in entries; -1 is the text being written
	recall  int
	entries []history.Entry
	pending string
	// last text removed by a kill key, inserted again by yank
	killed string
}

func newModel(b Backend, cfg *config.Config, sh *shared) model {
	ta := textarea.New()
	ta.Placeholder = "Type, then Enter to paste"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(cfg.Window.TextareaCols)
	ta.SetHeight(cfg.Window.TextareaRows)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	readlineKeys(&ta.KeyMap, cfg.Shortcuts)

	q := textinput.New()
	q.Prompt = "search: "
	q.Placeholder = "substring"

	return model{
		backend: b,
		window:  cfg.Window,
		keys:    newKeyMap(cfg.Shortcuts),
		shared:  sh,
		input:   ta,
		query:   q,
		help:    help.New(),
		recall:  -1,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case hotkeyMsg:
		m.hotkey = msg.chord
		return m, nil

	case showMsg:
		m.state = stateCapture
		m.input.SetValue(msg.draft)
		m.input.CursorEnd()
		m.recall = -1
		m.entries = m.backend.Entries()
		m.shared.setText(msg.draft)
		return m, m.input.Focus()

	case hideMsg:
		m.state = stateIdle
		m.input.Reset()
		m.input.Blur()
		m.query.Reset()
		m.query.Blur()
		m.shared.setText("")
		return m, nil

	case failedMsg:
		m.status = msg.err.Error()
		m.failed = true
		return m, nil

	case submittedMsg:
		if msg.err == nil {
			m.submits++
			m.status = fmt.Sprintf("pasted (%d this session)", m.submits)
			m.failed = false
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.state {
		case stateCapture:
			return m.updateCapture(msg)
		case stateSearch:
			return m.updateSearch(msg)
		}
		return m, nil
	}

	return m.forward(msg)
}

func (m model) updateCapture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Newline):
		// handled by the textarea
	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		b := m.backend
		return m, func() tea.Msg { return submittedMsg{err: b.Submit(text)} }
	case key.Matches(msg, m.keys.Close):
		text := m.input.Value()
		b := m.backend
		return m, func() tea.Msg { b.Dismiss(text); return nil }
	case key.Matches(msg, m.keys.HistoryPrev):
		m.step(1)
		return m, nil
	case key.Matches(msg, m.keys.HistoryNext):
		m.step(-1)
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.recall = -1
		m.shared.setText("")
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.state = stateSearch
		m.input.Blur()
		m.entries = m.backend.Search("")
		return m, m.query.Focus()
	case key.Matches(msg, m.keys.Yank):
		if m.killed != "" {
			m.input.InsertString(m.killed)
			m.shared.setText(m.input.Value())
		}
		return m, nil
	case key.Matches(msg, m.input.KeyMap.DeleteAfterCursor, m.input.KeyMap.DeleteBeforeCursor, m.input.KeyMap.DeleteWordBackward):
		before := m.input.Value()
		next, cmd := m.forward(msg)
		nm := next.(model)
		if k := removed(before, nm.input.Value()); k != "" {
			nm.killed = k
		}
		return nm, cmd
	}
	return m.forward(msg)
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.state = stateCapture
		m.query.Reset()
		m.query.Blur()
		m.entries = m.backend.Entries()
		return m, m.input.Focus()
	case msg.Type == tea.KeyEnter:
		if len(m.entries) > 0 {
			m.input.SetValue(m.entries[0].Text)
			m.input.CursorEnd()
			m.shared.setText(m.entries[0].Text)
		}
		m.state = stateCapture
		m.query.Reset()
		m.query.Blur()
		m.recall = -1
		m.entries = m.backend.Entries()
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	m.entries = m.backend.Search(m.query.Value())
	return m, cmd
}

// step moves through history; positive is older.
func (m *model) step(dir int) {
	next := m.recall + dir
	if next < -1 || next >= len(m.entries) {
		return
	}
	if m.recall == -1 {
		m.pending = m.input.Value()
	}
	m.recall = next
	text := m.pending
	if next >= 0 {
		text = m.entries[next].Text
	}
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.shared.setText(text)
}

func (m model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state != stateCapture {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.shared.setText(m.input.Value())
	return m, cmd
}

var (
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boldStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	historyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	paneStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("239")).Padding(0, 1)
)

func (m model) View() string {
	var b strings.Builder

	if m.state == stateIdle {
		b.WriteString(dimStyle.Render("○ WAITING") + "\n")
		if m.hotkey != "" {
			b.WriteString(boldStyle.Render(m.hotkey) + dimStyle.Render(" to capture") + "\n")
		} else {
			b.WriteString(errStyle.Render("no hotkey registered") + "\n")
		}
		b.WriteString(m.statusLine())
		b.WriteString(dimStyle.Render("ctrl+c to quit") + "\n")
		return b.String()
	}

	b.WriteString(paneStyle.Render(m.historyPane()) + "\n")
	if m.state == stateSearch {
		b.WriteString(m.query.View() + "\n")
	}
	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.statusLine())
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) statusLine() string {
	if m.status == "" {
		return ""
	}
	if m.failed {
		return errStyle.Render("✗ "+m.status) + "\n"
	}
	return okStyle.Render("✓ "+m.status) + "\n"
}

// historyPane shows the newest window.history_lines entries, one line each.
func (m model) historyPane() string {
	width := m.window.TextareaCols
	n := min(m.window.HistoryLines, len(m.entries))
	if n == 0 {
		return dimStyle.Render("No history yet")
	}
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		line := oneLine(m.entries[i].Text, width)
		if i == m.recall {
			line = boldStyle.Render("› " + line)
		} else {
			line = historyStyle.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// oneLine flattens text and cuts it to width runes.
func oneLine(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	r := []rune(flat)
	if width > 1 && len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return flat
}
