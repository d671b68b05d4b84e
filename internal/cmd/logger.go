package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/filebatch/bgs/internal/config"
)

// addLoggingFlags registers the logging flags shared by all subcommands.
func addLoggingFlags(cmd *cobra.Command) {
	defaults := config.Default().Logging
	cmd.Flags().String("log-level", defaults.Level, "Logging level: debug, info, warn or error")
	cmd.Flags().String("log-format", defaults.Format, "Log output format: text or json")
	cmd.Flags().String("log-file", defaults.File, "Append logs to this file instead of stderr")
	cmd.Flags().BoolP("quiet", "q", defaults.Quiet, "Silence all diagnostic output")
}

// applyLoggingFlags overlays any logging flags the user set onto cfg.
func applyLoggingFlags(flags *pflag.FlagSet, cfg *config.LoggingConfig) {
	if flags.Changed("log-level") {
		cfg.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("log-file") {
		cfg.File, _ = flags.GetString("log-file")
	}
	if flags.Changed("quiet") {
		cfg.Quiet, _ = flags.GetBool("quiet")
	}
}

// newLogger builds a slog.Logger from the logging configuration. It never
// touches the slog default logger; callers pass the instance down to the
// batch package explicitly. The returned closer releases the log file, if
// one was opened.
func newLogger(cfg config.LoggingConfig) (*slog.Logger, func(), error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	closer := func() {}
	var outW io.Writer = os.Stderr
	switch {
	case cfg.Quiet:
		outW = io.Discard
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
		}
		outW = f
		closer = func() { f.Close() }
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler), closer, nil
}
