package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/banshee-data/labelsmith/internal/config"
	"github.com/banshee-data/labelsmith/internal/framing"
	"github.com/banshee-data/labelsmith/internal/fsutil"
	"github.com/banshee-data/labelsmith/internal/ingest"
	"github.com/banshee-data/labelsmith/internal/labelfile"
	"github.com/banshee-data/labelsmith/internal/labelimg"
	"github.com/banshee-data/labelsmith/internal/logging"
	"github.com/banshee-data/labelsmith/internal/serialport"
	"github.com/banshee-data/labelsmith/internal/timeutil"
)

var (
	flagConfig    string
	flagPort      string
	flagOutputDir string
	flagLogLevel  string
	flagReplay    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the station loop: scan, compose, write labels",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := logging.New(cfg.LogLevel)

		fsys := fsutil.OSFileSystem{}
		composer, err := labelimg.NewComposer(cfg, fsys)
		if err != nil {
			return err
		}
		sink, err := labelfile.NewSink(cfg, fsys, timeutil.RealClock{}, logger)
		if err != nil {
			return err
		}

		var source io.ReadCloser
		if flagReplay != "" {
			source, err = os.Open(flagReplay)
			if err != nil {
				return fmt.Errorf("failed to open replay source: %w", err)
			}
			logger.Info("replaying captured stream", "path", flagReplay)
		} else {
			path, err := serialport.Locate(cfg.PortOverride, nil)
			if err != nil {
				return err
			}
			source, err = serialport.Open(path, serialport.Options{BaudRate: cfg.BaudRate}, cfg.GetReadTimeout())
			if err != nil {
				return err
			}
			logger.Info("scanner port open", "path", path, "baud", cfg.BaudRate)
		}
		defer source.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		loop := ingest.New(framing.New(cfg.TerminatorBytes(), cfg.MaxPending), composer, sink, logger)
		err = loop.Run(ctx, source)

		stats := loop.Stats()
		logger.Info("session finished",
			"lines", stats.LinesSeen,
			"matched", stats.Matched,
			"labels", stats.LabelsWritten,
			"overflow_drops", stats.OverflowDrops)

		if errors.Is(err, context.Canceled) {
			logger.Info("stopped by operator")
			return nil
		}
		return err
	},
}

// loadConfig builds the immutable station configuration: defaults, then the
// optional config file, then the handful of operator-facing flags.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return cfg, err
		}
	}
	if flagPort != "" {
		cfg.PortOverride = flagPort
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func init() {
	runCmd.Flags().StringVar(&flagConfig, "config", "", "path to JSON config file")
	runCmd.Flags().StringVar(&flagPort, "port", "", "serial port override (default: autodetect)")
	runCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "label output directory")
	runCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log verbosity (trace, debug, info, warn, error)")
	runCmd.Flags().StringVar(&flagReplay, "replay", "", "replay a captured byte stream instead of opening a port")
	rootCmd.AddCommand(runCmd)
}
