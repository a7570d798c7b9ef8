// Package worker runs queued fills on River.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/internal/filler"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
)

type Options struct {
	// MaxWorkers is the number of fills processed at once.
	MaxWorkers int
	// JobTimeout bounds a single pipeline run.
	JobTimeout time.Duration
}

func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxWorkers: cfg.Worker.MaxWorkers,
		JobTimeout: cfg.Worker.JobTimeout,
	}
}

// errorHandler logs what River reports after a job fails. Panics carry the
// stack, which the returned error does not.
type errorHandler struct{}

var _ river.ErrorHandler = errorHandler{}

func (errorHandler) HandleError(ctx context.Context, job *rivertype.JobRow, err error) *river.ErrorHandlerResult {
	logger.Debug(ctx, "fill job errored",
		zap.Int64("jobID", job.ID), zap.Int("attempt", job.Attempt), zap.Error(err))

	return nil
}

func (errorHandler) HandlePanic(ctx context.Context, job *rivertype.JobRow, panicVal any, trace string) *river.ErrorHandlerResult {
	logger.Error(ctx, "fill job panicked",
		zap.Int64("jobID", job.ID), zap.Int("attempt", job.Attempt),
		zap.Any("panic", panicVal), zap.String("stack", trace))

	return nil
}

// Start registers the fill worker and starts a River client working the fill
// queue. Stop the returned client to drain running jobs.
func Start(ctx context.Context, dbPool *pgxpool.Pool, f filler.Filler, options Options) (*river.Client[pgx.Tx], error) {
	ctx = logger.Named(ctx, "worker")

	workers := river.NewWorkers()
	if err := river.AddWorkerSafely(workers, NewFillDocumentWorker(f, options.JobTimeout)); err != nil {
		return nil, fmt.Errorf("could not register fill worker: %w", err)
	}

	client, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			filler.Queue: {MaxWorkers: max(options.MaxWorkers, 1)},
		},
		Workers:      workers,
		ErrorHandler: errorHandler{},
		Logger:       slog.New(zapslog.NewHandler(logger.Get(ctx).Named("river").Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river client: %w", err)
	}

	if err := client.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river client: %w", err)
	}
	logger.Info(ctx, "fill worker started", zap.String("queue", filler.Queue), zap.Int("maxWorkers", max(options.MaxWorkers, 1)))

	return client, nil
}
