package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage queues background work. Jobs added through a TxStorage commit
// or roll back with the rest of the transaction.
type JobStorage interface {
	// AddJob inserts a job and reports false when an identical unique job is
	// already queued.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
