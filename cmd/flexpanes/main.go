package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"flexpanes/internal/config"
	"flexpanes/internal/trace"
	"flexpanes/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Flags holds command-line overrides for the config file.
type Flags struct {
	ConfigPath string
	Axis       string
	Reverse    bool
	Throttle   time.Duration
	Mockup     bool
	LogFile    string
}

func main() {
	var flags Flags

	rootCmd := &cobra.Command{
		Use:   "flexpanes [flags]",
		Short: "Resizable, reorderable terminal panels",
		Long: `flexpanes lays panels out in a row or a column. Drag separators with the
mouse to resize, drag a panel title onto another panel to swap them, and
click a panel's [-] marker to collapse it.`,
		Example: `  # Default layout
  flexpanes

  # Stack the configured panels vertically, refreshing at most every 16ms
  flexpanes --axis vertical --throttle 16ms`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags)
		},
	}
	rootCmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "Config file (default ~/.config/flexpanes/config.toml)")
	rootCmd.Flags().StringVar(&flags.Axis, "axis", "", "Layout axis: horizontal or vertical")
	rootCmd.Flags().BoolVar(&flags.Reverse, "reverse", false, "Lay panels out end to start")
	rootCmd.Flags().DurationVar(&flags.Throttle, "throttle", 0, "Minimum interval between separator refreshes")
	rootCmd.Flags().BoolVar(&flags.Mockup, "mockup", false, "Tint panels for layout prototyping")
	rootCmd.Flags().StringVar(&flags.LogFile, "log-file", "", "Write logs to this file (discarded otherwise)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, flags Flags) error {
	// The TUI owns the terminal; log output would corrupt it.
	if flags.LogFile != "" {
		f, err := tea.LogToFile(flags.LogFile, "flexpanes")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, flags, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	exporter, err := trace.NewOTLPExporter(ctx)
	if err != nil {
		log.Printf("tracing disabled: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := exporter.Shutdown(shutdownCtx); err != nil {
			log.Printf("trace shutdown: %v", err)
		}
	}()

	app, err := ui.NewAppModel(cfg, ui.AppDeps{
		Recorder: trace.NewRecorder(exporter.Tracer(), 0, nil),
	})
	if err != nil {
		return err
	}
	defer app.Close()

	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Panels follow edits to the config file while the program runs.
	err = config.Watch(flags.ConfigPath, func(next config.Config, err error) {
		if err == nil {
			applyFlags(cmd, flags, &next)
			err = next.Validate()
		}
		p.Send(ui.ConfigReloadedMsg{Config: next, Err: err})
	})
	if err != nil {
		log.Printf("config watch disabled: %v", err)
	}
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// applyFlags overrides config values with the flags the user set.
func applyFlags(cmd *cobra.Command, flags Flags, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("axis") {
		cfg.Layout.Axis = flags.Axis
	}
	if fs.Changed("reverse") {
		cfg.Layout.Reversed = flags.Reverse
	}
	if fs.Changed("throttle") {
		cfg.Layout.ThrottleMS = int(flags.Throttle / time.Millisecond)
	}
	if fs.Changed("mockup") {
		cfg.Layout.Mockup = flags.Mockup
	}
}
