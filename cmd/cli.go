// SPDX-License-Identifier: MIT

// Package cmd is the command line front end: flag parsing on top of the YAML
// configuration, and the wiring of sources, sinks and the acquisition engine.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spectrum/internal/audio"
	"spectrum/internal/config"
	"spectrum/internal/log"
	"spectrum/internal/tui"
	"spectrum/pkg/build"
)

// RunFunc runs the analyzer with a fully resolved configuration.
type RunFunc func(ctx context.Context, cfg *config.Config) error

// flags holds the command line values; only flags the user set override the
// configuration file.
type flags struct {
	configPath string
	logLevel   string
	verbose    bool
	source     string
	sinks      []string
	record     bool
	singleShot bool
}

// Execute parses os.Args and runs the selected command.
func Execute(ctx context.Context) error {
	return NewRootCommand(Run).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree; run is called by the root command.
func NewRootCommand(run RunFunc) *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:           "spectrum",
		Short:         "Low-frequency spectrum analyzer",
		Long:          "Samples a signal at a fixed rate, transforms every 2048 samples and draws the waveform and its spectrum.",
		Version:       build.Get().Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(f.configPath)
			if err != nil {
				return err
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "",
		"Path to the YAML configuration. Defaults to ./config.yaml if present.")
	pf.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel,
		"Log level: debug, info, warn or error")
	pf.BoolVarP(&f.verbose, "verbose", "v", false,
		"Show debug output (same as --log-level debug)")

	rf := rootCmd.Flags()
	rf.StringVarP(&f.source, "source", "s", config.DefaultInitialSource,
		"Initial source: "+strings.Join(config.SourceNames, ", "))
	rf.StringSliceVarP(&f.sinks, "display", "d", []string{config.SinkLog},
		"Comma separated displays: log, tui, websocket, panel, udp")
	rf.BoolVarP(&f.record, "record", "r", false,
		"Write every completed cycle to a WAV file in recording.output_dir")
	rf.BoolVar(&f.singleShot, "single-shot", false,
		"Stop acquiring after each completed cycle")

	rootCmd.AddCommand(newDevicesCommand(), newVersionCommand())

	return rootCmd
}

// apply copies the flags the user set onto cfg and validates the result.
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if f.verbose {
		cfg.Debug = true
	}
	if changed("source") {
		cfg.Acquisition.InitialSource = f.source
	}
	if changed("display") {
		cfg.Display.Sinks = f.sinks
	}
	if changed("record") {
		cfg.Recording.Enabled = f.record
	}
	if changed("single-shot") {
		cfg.Acquisition.SingleShot = f.singleShot
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = log.LevelDebug
	}
	log.SetLevel(level)
	return nil
}

func newDevicesCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List audio input devices usable as the analog source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := audio.Initialize(); err != nil {
				return err
			}
			defer audio.Terminate()

			if !interactive {
				return audio.ListDevices(cmd.OutOrStdout())
			}

			id, ok, err := tui.SelectDevice()
			if err != nil || !ok {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"sources:\n  analog:\n    driver: %s\n    device: %d\n", config.AnalogPortAudio, id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"Pick a device and print the matching configuration")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), build.Get())
		},
	}
}
