package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"promptline/doctor"
	"promptline/history"
	"promptline/log"
	"promptline/login"
	"promptline/platform"
	"promptline/shortcut"
)

func newHistoryCmd(o *options) *cobra.Command {
	var limit int
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "history [query]",
		Short: "Print stored entries, most recent first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			hist, err := openHistory(store.Current())
			if err != nil {
				return err
			}
			defer hist.Close()

			if clearAll {
				if err := hist.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return nil
			}

			var entries []history.Entry
			if len(args) == 1 {
				entries = hist.Search(args[0])
			} else {
				entries = hist.Entries()
			}
			printEntries(cmd, entries, limit)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to print (0 for all)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete every entry")
	return cmd
}

func printEntries(cmd *cobra.Command, entries []history.Entry, limit int) {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := cmd.OutOrStdout()
	for _, e := range entries {
		text := strings.ReplaceAll(e.Text, "\n", "⏎")
		fmt.Fprintf(out, "%s  %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"), text)
	}
}

func newReplayCmd() *cobra.Command {
	var delay time.Duration
	cmd := &cobra.Command{
		Use:   "replay <shortcut>",
		Short: "Replay a chord into the focused window after a delay",
		Long:  "Replay a chord into the focused window after a delay. Use it to find the right app_overrides entry for a program.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := shortcut.Parse(args[0])
			if err != nil {
				return err
			}
			if err := log.Init(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
			}
			defer log.Close()

			plat, err := platform.New()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Focus the target window; replaying %s in %s...\n", spec, delay)
			time.Sleep(delay)
			fg := plat.CaptureForeground()
			if err := plat.Replay(spec.String()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "replayed %s into %q\n", spec, fg)
			return nil
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", 3*time.Second, "time to focus the target window")
	return cmd
}

func newDoctorCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run interactive checks for hotkey, clipboard, foreground and replay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			cfg := store.Current()
			if code := doctor.Run(doctor.DefaultOptions(cfg.LaunchCandidates(), cfg.Behavior.SimulatePasteShortcut)); code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "promptline %s\n", version)
		},
	}
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "login [enable|disable|status]",
		Short:     "Manage starting promptline when you log in",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"enable", "disable", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "status"
			if len(args) == 1 {
				action = args[0]
			}
			out := cmd.OutOrStdout()
			switch action {
			case "enable":
				// A login session has no terminal, so the item always starts the GUI.
				if err := login.Enable([]string{"--surface", "gui"}); err != nil {
					return err
				}
				fmt.Fprintln(out, "start on login enabled")
			case "disable":
				if err := login.Disable(); err != nil {
					return err
				}
				fmt.Fprintln(out, "start on login disabled")
			default:
				if login.Enabled() {
					fmt.Fprintln(out, "start on login: on")
				} else {
					fmt.Fprintln(out, "start on login: off")
				}
			}
			return nil
		},
	}
}
