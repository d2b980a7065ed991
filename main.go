package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"promptline/beep"
	"promptline/clipboard"
	"promptline/config"
	"promptline/draft"
	"promptline/history"
	"promptline/hotkey"
	"promptline/log"
	"promptline/pipeline"
	"promptline/platform"
	"promptline/shutdown"
	"promptline/tui"
)

var version = "dev"

type options struct {
	configPath string
	logPath    string
	surface    string
	autoPaste  bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "promptline",
		Short:         "Capture text from a global hotkey and paste it back where you were",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogDir(o.logPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, o)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file (default: OS config dir/promptline/config.toml)")
	pf.StringVar(&o.logPath, "logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	pf.StringVar(&o.surface, "surface", "tui", "capture surface: tui or gui")
	pf.BoolVar(&o.autoPaste, "autopaste", true, "paste into the previous window after submit (overrides behavior.auto_paste)")

	root.AddCommand(
		newHistoryCmd(o),
		newReplayCmd(),
		newDoctorCmd(o),
		newLoginCmd(),
		newVersionCmd(),
	)
	return root
}

func execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// guiRequested looks ahead for --surface gui, before cobra parses flags,
// so the GUI can claim the main thread.
func guiRequested(args []string) bool {
	for i, a := range args {
		if a == "--surface=gui" || a == "-surface=gui" {
			return true
		}
		if (a == "--surface" || a == "-surface") && i+1 < len(args) && args[i+1] == "gui" {
			return true
		}
	}
	return false
}

func setupLogDir(flagPath string) error {
	logPath, err := log.ResolveDir(flagPath)
	if err != nil {
		return fmt.Errorf("failed to resolve log directory: %w", err)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}
	return nil
}

// loadConfig opens the config store and applies command-line overrides.
func loadConfig(cmd *cobra.Command, o *options) (*config.Store, error) {
	path := o.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
		path = p
	}
	store, err := config.Open(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("autopaste") {
		store.Override(func(c *config.Config) { c.Behavior.AutoPaste = o.autoPaste })
	}
	return store, nil
}

// terminalPastePolicy turns auto paste off for the tui surface unless
// --autopaste was given. The terminal keeps focus after the prompt hides,
// so a synthesized paste would land back in the terminal. Reports whether
// the policy changed anything.
func terminalPastePolicy(store *config.Store, surface string, flagSet bool) bool {
	if surface != "tui" || flagSet || !store.Current().Behavior.AutoPaste {
		return false
	}
	store.Override(func(c *config.Config) { c.Behavior.AutoPaste = false })
	return true
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, fmt.Errorf("history path: %w", err)
	}
	l, err := history.NewLog(cfg.History.Backend, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", history.ErrStorage, err)
	}
	store, err := history.Open(l, cfg.History.MaxEntries)
	if err != nil {
		l.Close()
		return nil, err
	}
	return store, nil
}

func runApp(cmd *cobra.Command, o *options) error {
	if o.surface != "tui" && o.surface != "gui" {
		return fmt.Errorf("unknown surface %q (use tui or gui)", o.surface)
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	store, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}
	if terminalPastePolicy(store, o.surface, cmd.Flags().Changed("autopaste")) {
		log.Warnf("auto paste off for the tui surface; pass --autopaste to force it")
	}
	cfg := store.Current()

	dataDir, err := config.DataDir()
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	lock, err := acquireInstanceLock(dataDir)
	if err != nil {
		return err
	}
	defer lock.Unlock()

	hist, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer hist.Close()

	plat, err := platform.New()
	if err != nil {
		log.Warnf("keystroke injection unavailable: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: auto paste disabled: %v\n", err)
	}

	beep.Init()

	p, err := pipeline.New(pipeline.Options{
		Config:    store,
		History:   hist,
		Clipboard: clipboard.Bridge{},
		Platform:  plat,
		Drafts:    draft.File{Path: filepath.Join(dataDir, "draft.txt")},
	})
	if err != nil {
		return err
	}

	reg := hotkey.NewRegistrar(hotkey.New)
	bound, err := reg.Register(cfg.LaunchCandidates())
	if err != nil {
		log.Warnf("%v", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer reg.Close()

	ctx, stop := shutdown.Context(context.Background())
	defer stop()

	go func() {
		if err := store.Watch(ctx, nil); err != nil {
			log.Warnf("%v", err)
		}
	}()

	log.SessionStart(version, o.surface, bound)
	defer func() { log.SessionEnd(p.Submits()) }()

	listen := func() {
		if reg.State() != hotkey.Registered {
			return
		}
		if err := reg.Listen(ctx, p.Toggle); err != nil {
			log.Errorf("hotkey listener: %v", err)
		}
	}

	if o.surface == "gui" {
		return runGUI(ctx, p, cfg, listen)
	}

	ui := tui.New(p, cfg)
	p.SetSurface(ui)
	go ui.SetHotkey(bound)
	go listen()
	return ui.Run(ctx)
}
