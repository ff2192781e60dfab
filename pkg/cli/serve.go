package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"

	"figrelay/pkg/cli/config"
	controller "figrelay/pkg/controller/http"
	"figrelay/pkg/domain/interfaces"
	"figrelay/pkg/infra/registry"
	slackinfra "figrelay/pkg/infra/slack"
	"figrelay/pkg/usecase"
	"figrelay/pkg/utils/async"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		slackCfg  config.Slack
		figmaCfg  config.Figma
		rulesCfg  config.Rules
	)

	flags := append(serverCfg.Flags(), slackCfg.Flags()...)
	flags = append(flags, figmaCfg.Flags()...)
	flags = append(flags, rulesCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting figrelay server",
				slog.String("addr", serverCfg.Addr),
				slog.String("rules", rulesCfg.Path),
			)

			// Load static configuration
			rules, tuning, err := rulesCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load notification rules")
			}
			rules.DefaultChannel = slackCfg.DefaultChannel

			// Message registry: persistent if a db path is given
			var store interfaces.MessageRegistry
			if rulesCfg.DBPath != "" {
				sqliteStore, err := registry.NewSQLite(rulesCfg.DBPath)
				if err != nil {
					return goerr.Wrap(err, "failed to open message registry")
				}
				store = sqliteStore
			} else {
				store = registry.NewMemory()
			}
			defer store.Close()

			// Guard with optional tuning from the rules file
			var guardOpts []usecase.GuardOption
			if tuning.DedupTTL > 0 {
				guardOpts = append(guardOpts, usecase.WithDedupTTL(tuning.DedupTTL))
			}
			if tuning.RateWindow > 0 {
				guardOpts = append(guardOpts, usecase.WithRateWindow(tuning.RateWindow))
			}
			if tuning.RateLimit > 0 {
				guardOpts = append(guardOpts, usecase.WithRateLimit(tuning.RateLimit))
			}
			guard := usecase.NewGuard(guardOpts...)

			// Create use case
			messenger := slackinfra.New(slackCfg.Token)
			notifyUC := usecase.NewNotify(rules, guard, messenger, store)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				notifyUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithPasscode(figmaCfg.Passcode),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Periodic cleanup, dispatched so a slow prune never blocks the
			// scheduler thread
			scheduler := cron.New()
			if _, err := scheduler.AddFunc("@every 1m", func() {
				async.Dispatch(ctx, func(ctx context.Context) error {
					return notifyUC.Cleanup(ctx)
				})
			}); err != nil {
				return goerr.Wrap(err, "failed to schedule cleanup")
			}
			scheduler.Start()
			defer scheduler.Stop()

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
