package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/internal/filler"
	"github.com/sonnq3591/plg-hsdt/pkg/llm"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

// DefaultSnooze is used when the model is rate limited without saying for how long.
const DefaultSnooze = 30 * time.Second

// FillDocumentWorker is a River worker that runs the fill pipeline for queued
// fills. The model client shares one rate limiter across all jobs, so the
// worker itself only maps failures to River actions:
//   - missing fills and inputs that can never be filled cancel the job,
//   - a rate limited model snoozes the job for the advertised duration,
//   - anything else is returned so River retries with its backoff.
type FillDocumentWorker struct {
	river.WorkerDefaults[filler.JobArgs]

	filler  filler.Filler
	timeout time.Duration
}

// NewFillDocumentWorker constructs a FillDocumentWorker. A zero timeout keeps
// River's default job timeout.
func NewFillDocumentWorker(f filler.Filler, timeout time.Duration) *FillDocumentWorker {
	return &FillDocumentWorker{filler: f, timeout: timeout}
}

// Timeout implements river.Worker.
func (w *FillDocumentWorker) Timeout(*river.Job[filler.JobArgs]) time.Duration {
	return w.timeout
}

// Work processes a single fill job.
func (w *FillDocumentWorker) Work(ctx context.Context, job *river.Job[filler.JobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.Int("attempt", job.Attempt),
		zap.String("fillID", job.Args.FillID.String()))

	err := w.filler.Process(ctx, job.Args.FillID)
	if err == nil {
		return nil
	}

	switch {
	case serrors.Permanent(err):
		logger.Warn(ctx, "fill cannot be processed", zap.Error(err))

		return river.JobCancel(err) //nolint: wrapcheck
	case serrors.KindOf(err) == serrors.ErrRateLimited:
		dur := DefaultSnooze
		var rl *llm.RateLimitError
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			dur = rl.RetryAfter
		}
		logger.Warn(ctx, "model rate limited, snoozing", zap.Duration("snooze", dur))

		return river.JobSnooze(dur) //nolint: wrapcheck
	}

	logger.Error(ctx, "error in filling document", zap.Error(err))

	return fmt.Errorf("could not fill document: %w", err)
}
