package worker_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sonnq3591/plg-hsdt/internal/filler"
	mockfiller "github.com/sonnq3591/plg-hsdt/internal/filler/mock"
	"github.com/sonnq3591/plg-hsdt/internal/worker"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/llm"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	os.Exit(m.Run())
}

func makeJob(id int64, fillID domain.FillID) *river.Job[filler.JobArgs] {
	return &river.Job[filler.JobArgs]{
		JobRow: &rivertype.JobRow{ID: id, Attempt: 1},
		Args:   filler.JobArgs{FillID: fillID},
	}
}

func newWorker(t *testing.T) (*mockfiller.MockFiller, *worker.FillDocumentWorker) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mock := mockfiller.NewMockFiller(ctrl)

	return mock, worker.NewFillDocumentWorker(mock, time.Minute)
}

func TestFillDocumentWorker_Work_Success(t *testing.T) {
	mock, w := newWorker(t)
	id := domain.FillID(uuid.New())

	mock.EXPECT().Process(gomock.Any(), id).Return(nil)
	require.NoError(t, w.Work(context.Background(), makeJob(1, id)))
}

func TestFillDocumentWorker_Work_Cancels(t *testing.T) {
	for _, kind := range []serrors.Kind{serrors.ErrNotFound, serrors.ErrBadRequest, serrors.ErrUnprocessable} {
		t.Run(kind.Error(), func(t *testing.T) {
			mock, w := newWorker(t)
			id := domain.FillID(uuid.New())

			mock.EXPECT().Process(gomock.Any(), id).Return(fmt.Errorf("wrapped: %w", serrors.With(kind, "nope")))

			err := w.Work(context.Background(), makeJob(2, id))
			var cancelErr *river.JobCancelError
			require.ErrorAs(t, err, &cancelErr)
		})
	}
}

func TestFillDocumentWorker_Work_RateLimitedSnoozes(t *testing.T) {
	mock, w := newWorker(t)
	id := domain.FillID(uuid.New())

	mock.EXPECT().Process(gomock.Any(), id).
		Return(serrors.Wrap(serrors.ErrRateLimited, &llm.RateLimitError{RetryAfter: 90 * time.Second}, "model rate limited"))

	err := w.Work(context.Background(), makeJob(3, id))
	var snoozeErr *river.JobSnoozeError
	require.ErrorAs(t, err, &snoozeErr)
	require.Equal(t, 90*time.Second, snoozeErr.Duration)
}

func TestFillDocumentWorker_Work_RateLimitedDefaultSnooze(t *testing.T) {
	mock, w := newWorker(t)
	id := domain.FillID(uuid.New())

	mock.EXPECT().Process(gomock.Any(), id).Return(serrors.With(serrors.ErrRateLimited, "slow down"))

	err := w.Work(context.Background(), makeJob(4, id))
	var snoozeErr *river.JobSnoozeError
	require.ErrorAs(t, err, &snoozeErr)
	require.Equal(t, worker.DefaultSnooze, snoozeErr.Duration)
}

func TestFillDocumentWorker_Work_GenericErrorRetries(t *testing.T) {
	mock, w := newWorker(t)
	id := domain.FillID(uuid.New())

	boom := errors.New("boom")
	mock.EXPECT().Process(gomock.Any(), id).Return(boom)

	err := w.Work(context.Background(), makeJob(5, id))
	require.ErrorIs(t, err, boom)
	var cancelErr *river.JobCancelError
	require.NotErrorAs(t, err, &cancelErr, "did not expect JobCancelError")
	var snoozeErr *river.JobSnoozeError
	require.NotErrorAs(t, err, &snoozeErr, "did not expect JobSnoozeError")
}

func TestFillDocumentWorker_Timeout(t *testing.T) {
	_, w := newWorker(t)
	require.Equal(t, time.Minute, w.Timeout(makeJob(6, domain.FillID(uuid.New()))))
}
