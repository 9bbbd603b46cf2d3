package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iudanet/cartosync/internal/server"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := server.Config{
		ListenAddr:      server.DefaultListenAddr,
		DBPath:          server.DefaultDBPath,
		WriteRate:       server.DefaultWriteRate,
		WriteWindow:     server.DefaultWriteWindow,
		ShutdownTimeout: server.DefaultShutdownTimeout,
	}
	var logLevel string

	cmd := &cobra.Command{
		Use:           "cartosync-server",
		Short:         "Reference project server for cartosync clients",
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			return server.Run(cmd.Context(), cfg, newLogger(level), Version)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "listen address")
	flags.StringVar(&cfg.StylesDir, "styles-dir", "", "directory with style projects (required)")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database for user-state documents")
	flags.IntVar(&cfg.WriteRate, "write-rate", cfg.WriteRate, "document writes per client and path in --write-window, 0 disables the limit")
	flags.DurationVar(&cfg.WriteWindow, "write-window", cfg.WriteWindow, "window of --write-rate")
	flags.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "time to finish requests on shutdown")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	_ = cmd.MarkFlagRequired("styles-dir")

	return cmd
}

// newLogger пишет текст в терминал и JSON в остальных случаях
func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
