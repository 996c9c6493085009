package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"quickreviewer/internal/logging"
	"quickreviewer/internal/server"
	"quickreviewer/internal/store"
)

func newServeCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the review API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.newLogger("quickreviewer.log")
			if err != nil {
				return err
			}

			// One instance per data dir: the in-process dedup registry only
			// coalesces requests inside a single process.
			lock := flock.New(filepath.Join(cfg.Paths.DataDir, "quickreviewer.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another quickreviewer instance is already running")
			}
			defer func() { _ = lock.Unlock() }()

			pipe, err := cmdCtx.buildPipeline(logger)
			if err != nil {
				return err
			}
			defer pipe.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg, pipe.coordinator, pipe.store, logger)
			if srv == nil {
				return errors.New("no api bind address configured")
			}
			if err := srv.Start(ctx); err != nil {
				return err
			}
			defer srv.Stop()

			if interval := time.Duration(cfg.Server.SweepIntervalMinutes) * time.Minute; interval > 0 {
				go runSweepLoop(ctx, pipe.store, interval, logger)
			}

			<-ctx.Done()
			logger.Info("shutting down")
			return nil
		},
	}
}

// runSweepLoop periodically evicts expired cache entries until ctx is done.
func runSweepLoop(ctx context.Context, reviewStore *store.Store, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := reviewStore.SweepExpired(ctx)
			if err != nil {
				logger.Warn("cache sweep failed", logging.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("cache sweep evicted entries", logging.Int64("removed", removed))
			}
		}
	}
}
