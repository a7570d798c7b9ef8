package filler

import (
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"

	"github.com/sonnq3591/plg-hsdt/pkg/domain"
)

// Queue is the River queue fill jobs are inserted into and worked from.
const Queue = "fills"

// JobArgs contains the arguments for a fill job submitted to River.
type JobArgs struct {
	// FillID is the fill to process. It is marked as unique so River keeps at
	// most one live job per fill.
	FillID domain.FillID `json:"fillId" river:"unique"`

	// maxAttempts configures the maximum number of times River should run the job.
	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the fill worker.
func (args JobArgs) Kind() string { return "FillDocumentJob" }

// InsertOpts returns the River options that control how the job is enqueued.
func (args JobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       Queue,
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
