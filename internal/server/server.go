// Package server wires the reference project server: styles directory,
// user-state storage and the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/cartosync/internal/server/handlers"
	"github.com/iudanet/cartosync/internal/server/middleware"
	"github.com/iudanet/cartosync/internal/server/storage/sqlite"
)

// Значения по умолчанию
const (
	DefaultListenAddr      = "localhost:7070"
	DefaultDBPath          = "cartosync-server.db"
	DefaultWriteRate       = 60
	DefaultWriteWindow     = time.Minute
	DefaultShutdownTimeout = 5 * time.Second
)

// Config holds the server settings.
type Config struct {
	ListenAddr      string
	StylesDir       string
	DBPath          string
	WriteRate       int // 0 отключает ограничение записи
	WriteWindow     time.Duration
	ShutdownTimeout time.Duration
}

// Validate checks that the styles directory exists.
func (c Config) Validate() error {
	if c.StylesDir == "" {
		return errors.New("styles dir is required")
	}
	info, err := os.Stat(c.StylesDir)
	if err != nil {
		return fmt.Errorf("styles dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("styles dir %s is not a directory", c.StylesDir)
	}
	if c.DBPath == "" {
		return errors.New("db path is required")
	}
	if c.WriteRate < 0 || c.WriteWindow < 0 {
		return errors.New("write limit must not be negative")
	}
	return nil
}

// Run listens on cfg.ListenAddr and serves until ctx is done.
func Run(ctx context.Context, cfg Config, logger *slog.Logger, version string) error {
	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddr, err)
	}
	return Serve(ctx, ln, cfg, logger, version)
}

// Serve serves the API on ln until ctx is done, then shuts down gracefully:
// change subscriptions are closed and in-flight requests get
// cfg.ShutdownTimeout to finish.
func Serve(ctx context.Context, ln net.Listener, cfg Config, logger *slog.Logger, version string) error {
	if err := cfg.Validate(); err != nil {
		_ = ln.Close()
		return err
	}

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	changes := handlers.NewChangesHandler(logger, cfg.StylesDir)
	rt := handlers.Router{
		Projects: handlers.NewProjectsHandler(logger, cfg.StylesDir, store),
		Changes:  changes,
		Health:   handlers.NewHealthHandler(logger, version, changes),
		Logger:   logger,
	}
	if cfg.WriteRate > 0 {
		window := cfg.WriteWindow
		if window == 0 {
			window = DefaultWriteWindow
		}
		limiter := middleware.NewRateLimiter(cfg.WriteRate, window, logger)
		defer limiter.Stop()
		rt.WriteLimit = limiter
	}

	srv := &http.Server{
		Handler:           rt.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening", "addr", ln.Addr().String(), "styles_dir", cfg.StylesDir, "version", version)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		timeout := cfg.ShutdownTimeout
		if timeout == 0 {
			timeout = DefaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// websocket соединения не отслеживаются Shutdown
		changes.CloseAll()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
