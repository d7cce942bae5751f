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
	"github.com/m-mizutani/relnote/pkg/cli/config"
	controller "github.com/m-mizutani/relnote/pkg/controller/http"
	"github.com/m-mizutani/relnote/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		devopsCfg    config.DevOps
		jiraCfg      config.Jira
		storageCfg   config.Storage
		slackCfg     config.Slack
		firestoreCfg config.Firestore
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, devopsCfg.Flags()...)
	flags = append(flags, jiraCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, firestoreCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting relnote server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("devops", devopsCfg),
				slog.Any("jira", jiraCfg),
				slog.Any("storage", storageCfg),
				slog.Bool("trigger_auth", serverCfg.TriggerSecret != ""),
				slog.Bool("slack", slackCfg.Enabled()),
				slog.Bool("history", firestoreCfg.Enabled()),
			)

			builds, err := devopsCfg.New()
			if err != nil {
				return err
			}
			tracker, err := jiraCfg.New()
			if err != nil {
				return err
			}

			store, err := storageCfg.New(ctx)
			if err != nil {
				return err
			}
			defer safeClose(ctx, store)

			ucOpts := []usecase.Option{
				usecase.WithKeyPattern(jiraCfg.KeyPattern),
				usecase.WithArtifactStore(store),
			}

			if slackCfg.Enabled() {
				ucOpts = append(ucOpts, usecase.WithNotifier(slackCfg.New()))
			}

			if firestoreCfg.Enabled() {
				history, err := firestoreCfg.New(ctx)
				if err != nil {
					return err
				}
				defer safeClose(ctx, history)
				ucOpts = append(ucOpts, usecase.WithHistory(history))
			}

			// Create use cases
			releaseNoteUC, err := usecase.NewReleaseNote(builds, tracker, ucOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create release note use case")
			}

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				releaseNoteUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithTriggerSecret(serverCfg.TriggerSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

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
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

type closer interface {
	Close() error
}

func safeClose(ctx context.Context, c closer) {
	if err := c.Close(); err != nil {
		ctxlog.From(ctx).Warn("Failed to close client", slog.Any("error", err))
	}
}
