// Package config loads the TOML settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"promptline/history"
	"promptline/shortcut"
)

const FileName = "config.toml"

type Config struct {
	Shortcuts Shortcuts `toml:"shortcuts"`
	History   History   `toml:"history"`
	Window    Window    `toml:"window"`
	Behavior  Behavior  `toml:"behavior"`
}

// Shortcuts are chord strings in the form accepted by shortcut.Parse.
type Shortcuts struct {
	Launch          string   `toml:"launch"`
	LaunchFallbacks []string `toml:"launch_fallbacks"`
	Paste           string   `toml:"paste"`
	Close           string   `toml:"close"`
	HistoryNext     string   `toml:"history_next"`
	HistoryPrev     string   `toml:"history_prev"`
	Search          string   `toml:"search"`
	Clear           string   `toml:"clear"`

	// Readline editing inside the capture surface.
	LineStart    string `toml:"line_start"`
	LineEnd      string `toml:"line_end"`
	CharBack     string `toml:"char_back"`
	CharForward  string `toml:"char_forward"`
	WordBack     string `toml:"word_back"`
	WordForward  string `toml:"word_forward"`
	KillToEnd    string `toml:"kill_to_end"`
	KillToStart  string `toml:"kill_to_start"`
	KillWordBack string `toml:"kill_word_back"`
	DeleteChar   string `toml:"delete_char"`
	Yank         string `toml:"yank"`
}

type History struct {
	MaxEntries int    `toml:"max_entries"`
	Backend    string `toml:"backend"`
	// Path overrides the log location; empty means DataDir()/history.jsonl
	// (or history.db for the sqlite backend).
	Path string `toml:"path"`
}

type Window struct {
	FontSize        float64 `toml:"font_size"`
	HistoryFontSize float64 `toml:"history_font_size"`
	HistoryLines    int     `toml:"history_lines"`
	TextareaRows    int     `toml:"textarea_rows"`
	TextareaCols    int     `toml:"textarea_cols"`
}

type Behavior struct {
	SimulatePasteShortcut string              `toml:"simulate_paste_shortcut"`
	AppOverrides          []shortcut.Override `toml:"app_overrides"`
	AutoPaste             bool                `toml:"auto_paste"`
	SettleDelayMs         int                 `toml:"settle_delay_ms"`
	VoiceInput            bool                `toml:"voice_input"`
	VoiceInputShortcut    string              `toml:"voice_input_shortcut"`
	VoiceInputDelayMs     int                 `toml:"voice_input_delay_ms"`
}

func defaultOverrides() []shortcut.Override {
	return []shortcut.Override{
		{ProcessName: "alacritty.exe", Shortcut: "Ctrl+Shift+V"},
		{ProcessName: "wezterm-gui.exe", Shortcut: "Ctrl+Shift+V"},
		// Blank slot so users see the shape of an entry; never matches.
		{ProcessName: "", Shortcut: ""},
	}
}

func Default() *Config {
	return &Config{
		Shortcuts: Shortcuts{
			Launch:          "Ctrl+Shift+Space",
			LaunchFallbacks: []string{"Win+Shift+Space", "Alt+Space", "Ctrl+Alt+P"},
			Paste:           "Ctrl+Enter",
			Close:           "Escape",
			HistoryNext:     "Ctrl+N",
			HistoryPrev:     "Ctrl+P",
			Search:          "Ctrl+R",
			Clear:           "Ctrl+L",
			LineStart:       "Ctrl+A",
			LineEnd:         "Ctrl+E",
			CharBack:        "Ctrl+B",
			CharForward:     "Ctrl+F",
			WordBack:        "Alt+B",
			WordForward:     "Alt+F",
			KillToEnd:       "Ctrl+K",
			KillToStart:     "Ctrl+U",
			KillWordBack:    "Ctrl+W",
			DeleteChar:      "Ctrl+D",
			Yank:            "Ctrl+Y",
		},
		History: History{
			MaxEntries: history.DefaultMaxEntries,
			Backend:    history.BackendJSONL,
		},
		Window: Window{
			FontSize:        14,
			HistoryFontSize: 12,
			HistoryLines:    3,
			TextareaRows:    3,
			TextareaCols:    60,
		},
		Behavior: Behavior{
			SimulatePasteShortcut: "Ctrl+V",
			AppOverrides:          defaultOverrides(),
			AutoPaste:             true,
			SettleDelayMs:         100,
			VoiceInput:            false,
			VoiceInputShortcut:    "Win+H",
			VoiceInputDelayMs:     300,
		},
	}
}

// Load reads path, creating it with defaults when missing. Keys absent from
// the file keep their default values.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	cfg := Default()
	// Decoding into a non-empty slice merges element by element, so lists
	// start empty and get their defaults back only if the file omits them.
	cfg.Shortcuts.LaunchFallbacks = nil
	cfg.Behavior.AppOverrides = nil
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if !md.IsDefined("shortcuts", "launch_fallbacks") {
		cfg.Shortcuts.LaunchFallbacks = Default().Shortcuts.LaunchFallbacks
	}
	if !md.IsDefined("behavior", "app_overrides") {
		cfg.Behavior.AppOverrides = defaultOverrides()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate parses every shortcut and checks numeric bounds.
func (c *Config) Validate() error {
	var errs []error
	check := func(name, chord string) {
		if _, err := shortcut.Parse(chord); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	check("shortcuts.launch", c.Shortcuts.Launch)
	for i, fb := range c.Shortcuts.LaunchFallbacks {
		check(fmt.Sprintf("shortcuts.launch_fallbacks[%d]", i), fb)
	}
	check("shortcuts.paste", c.Shortcuts.Paste)
	check("shortcuts.close", c.Shortcuts.Close)
	check("shortcuts.history_next", c.Shortcuts.HistoryNext)
	check("shortcuts.history_prev", c.Shortcuts.HistoryPrev)
	check("shortcuts.search", c.Shortcuts.Search)
	check("shortcuts.clear", c.Shortcuts.Clear)
	for _, rl := range c.Shortcuts.readline() {
		check("shortcuts."+rl[0], rl[1])
	}
	check("behavior.simulate_paste_shortcut", c.Behavior.SimulatePasteShortcut)
	check("behavior.voice_input_shortcut", c.Behavior.VoiceInputShortcut)
	for i, o := range c.Behavior.AppOverrides {
		if strings.TrimSpace(o.ProcessName) == "" {
			continue
		}
		check(fmt.Sprintf("behavior.app_overrides[%d] (%s)", i, o.ProcessName), o.Shortcut)
	}

	if c.History.MaxEntries <= 0 {
		errs = append(errs, fmt.Errorf("history.max_entries must be positive, got %d", c.History.MaxEntries))
	}
	switch c.History.Backend {
	case "", history.BackendJSONL, history.BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("history.backend: unknown backend %q", c.History.Backend))
	}
	if c.Behavior.SettleDelayMs < 0 {
		errs = append(errs, fmt.Errorf("behavior.settle_delay_ms must not be negative"))
	}
	if c.Behavior.VoiceInputDelayMs < 0 {
		errs = append(errs, fmt.Errorf("behavior.voice_input_delay_ms must not be negative"))
	}
	return errors.Join(errs...)
}

// readline lists the editing chords with their config names, in file order.
func (s Shortcuts) readline() [][2]string {
	return [][2]string{
		{"line_start", s.LineStart},
		{"line_end", s.LineEnd},
		{"char_back", s.CharBack},
		{"char_forward", s.CharForward},
		{"word_back", s.WordBack},
		{"word_forward", s.WordForward},
		{"kill_to_end", s.KillToEnd},
		{"kill_to_start", s.KillToStart},
		{"kill_word_back", s.KillWordBack},
		{"delete_char", s.DeleteChar},
		{"yank", s.Yank},
	}
}

// LaunchCandidates is the launch chord followed by its fallbacks, without
// duplicates, in registration order.
func (c *Config) LaunchCandidates() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append([]string{c.Shortcuts.Launch}, c.Shortcuts.LaunchFallbacks...) {
		key := s
		if spec, err := shortcut.Parse(s); err == nil {
			key = spec.String()
		}
		if strings.TrimSpace(s) == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Behavior.SettleDelayMs) * time.Millisecond
}

func (c *Config) VoiceInputDelay() time.Duration {
	return time.Duration(c.Behavior.VoiceInputDelayMs) * time.Millisecond
}

// HistoryPath resolves where the history log lives.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if c.History.Backend == history.BackendSQLite {
		return filepath.Join(dir, "history.db"), nil
	}
	return filepath.Join(dir, "history.jsonl"), nil
}

// Width is the capture window width in pixels for the configured columns.
func (w Window) Width() float64 {
	charWidth := w.FontSize * 0.6
	return float64(w.TextareaCols)*charWidth + 24
}

// Height is the capture window height in pixels: header, history rows,
// text area, buttons and padding.
func (w Window) Height() float64 {
	const header, buttons, padding = 35.0, 28.0, 24.0

	historyItem := w.HistoryFontSize*1.4 + w.HistoryFontSize*1.3 + 16 + 2 + 1
	historyArea := float64(w.HistoryLines) * historyItem
	textArea := float64(w.TextareaRows)*w.FontSize*1.4 + 20

	return header + historyArea + textArea + buttons + padding
}
