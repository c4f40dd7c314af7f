package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/gymdesk/internal/config"
	"github.com/jask/gymdesk/internal/datecal"
	"github.com/jask/gymdesk/internal/filtercal"
	"github.com/jask/gymdesk/internal/logger"
	"github.com/jask/gymdesk/internal/overlay"
	"github.com/jask/gymdesk/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "gymdesk",
		Short:        "Gym member desk with date and range pickers",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			lg, closer, err := logger.Open(cfg.Log.File, cfg.Log.Level)
			if err != nil {
				log.Printf("warn: logging disabled: %v", err)
			}
			if closer != nil {
				defer closer.Close()
			}

			shortcuts, err := loadShortcuts(cfg, lg)
			if err != nil {
				return err
			}

			m := tui.New(tui.Options{
				WeekStart:    cfg.WeekStart(),
				Presets:      cfg.Picker.Presets,
				ShowDuration: cfg.Picker.ShowDuration,
				Positioner:   overlay.Positioner{Gap: cfg.Overlay.Gap, Edge: cfg.Overlay.Edge},
				Shortcuts:    shortcuts,
				Accent:       cfg.UI.ThemeAccent,
				Clock:        time.Now,
				Logger:       lg,
			})
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $GYMDESK_CONFIG or ~/.config/gymdesk/config.toml)")
	root.AddCommand(newShortcutsCmd(&cfgPath))
	return root
}

func newShortcutsCmd(cfgPath *string) *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "shortcuts [label]",
		Short: "Print filter shortcuts and the ranges they select",
		Long: "Print every configured filter shortcut with its range relative to today.\n" +
			"With a label argument, resolve it the way the filter calendar does and print only the match.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			shortcuts, err := loadShortcuts(cfg, logger.Discard())
			if err != nil {
				return err
			}

			clock := time.Now
			if today != "" {
				d, err := datecal.ParseLocalDate(today)
				if err != nil {
					return fmt.Errorf("--today: %w", err)
				}
				clock = func() time.Time { return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.Local) }
			}

			core := filtercal.New(filtercal.Options{
				Clock:     clock,
				WeekStart: cfg.WeekStart(),
				Shortcuts: shortcuts,
			})
			if len(args) == 1 {
				s, err := core.ApplyShortcut(args[0])
				if err != nil {
					return err
				}
				start, end := core.Range()
				return printShortcuts(cmd.OutOrStdout(), [][3]string{{s.Label, datecal.FormatLocalDate(start), datecal.FormatLocalDate(end)}})
			}

			rows := make([][3]string, 0, len(shortcuts))
			for _, s := range core.Shortcuts() {
				start, end := s.Range(core.Grid().Today())
				rows = append(rows, [3]string{s.Label, datecal.FormatLocalDate(start), datecal.FormatLocalDate(end)})
			}
			return printShortcuts(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "resolve ranges as if today were YYYY-MM-DD")
	return cmd
}

// loadShortcuts reads the shortcut definitions file. A malformed file is
// reported and the defaults are used.
func loadShortcuts(cfg config.Config, lg *slog.Logger) ([]filtercal.Shortcut, error) {
	defs, err := config.LoadShortcuts(cfg.Filter.ShortcutsFile)
	if err != nil {
		lg.Warn("shortcuts file ignored", "path", cfg.Filter.ShortcutsFile, "error", err)
		log.Printf("warn: %v; using default shortcuts", err)
	}
	shortcuts, err := config.BuildShortcuts(defs, cfg.WeekStart())
	if err != nil {
		return nil, fmt.Errorf("shortcuts %s: %w", cfg.Filter.ShortcutsFile, err)
	}
	return shortcuts, nil
}

func printShortcuts(w io.Writer, rows [][3]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r[0], r[1], r[2])
	}
	return tw.Flush()
}
