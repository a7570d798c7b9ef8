package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/internal/api"
	"github.com/sonnq3591/plg-hsdt/internal/api/handler/v1handler"
	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/internal/filler"
	"github.com/sonnq3591/plg-hsdt/internal/worker"
	"github.com/sonnq3591/plg-hsdt/pkg/blob"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/metrics"
)

func setupServer(ctx context.Context, cfg *config.Config, f filler.Filler, mp metric.MeterProvider) func(ctx context.Context) {
	server, err := api.NewServer(api.Deps{
		Deps:          v1handler.Deps{Filler: f},
		MeterProvider: mp,
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mp, err := metrics.Setup()
			if err != nil {
				logger.Fatal(ctx, "could not set up metrics", zap.Error(err))
			}

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			blobs, err := blob.NewFS(cfg.Storage.BlobDir)
			if err != nil {
				logger.Fatal(ctx, "could not create blob store", zap.Error(err))
			}

			runner, closeLLM := getPipeline(ctx, cfg)
			defer closeLLM()

			f := filler.New(strg, blobs, runner, filler.NewOptions(cfg))

			riverClient, err := worker.Start(ctx, strg.Pool, f, worker.NewOptions(cfg))
			if err != nil {
				logger.Fatal(ctx, "could not start workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, f, mp)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(ctx, "stopping workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop workers", zap.Error(err))
			}
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "could not flush metrics", zap.Error(err))
			}
		},
	}

	return cmd
}
