package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivertype"
)

// AddJob inserts a river job. Inside a transaction the job becomes visible
// only when the transaction commits, so a fill row and its job are created
// together or not at all. It reports false when river skipped the insert as a
// duplicate of a unique job.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	queue, err := p.jobQueue()
	if err != nil {
		return false, err
	}

	var res *rivertype.JobInsertResult
	if tx, ok := p.DB.(*sql.Tx); ok {
		res, err = queue.InsertTx(ctx, tx, args, opts)
	} else {
		res, err = queue.Insert(ctx, args, opts)
	}
	if err != nil {
		return false, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
	}

	return !res.UniqueSkippedAsDuplicate, nil
}

// jobQueue returns the insert-only client, creating one for handles that
// were not built by New.
func (p *PgSQL) jobQueue() (*river.Client[*sql.Tx], error) {
	if p.queue != nil {
		return p.queue, nil
	}

	var db *sql.DB
	if d, ok := p.DB.(*sql.DB); ok {
		db = d
	}
	queue, err := river.NewClient(riverdatabasesql.New(db), &river.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}
	p.queue = queue

	return queue, nil
}
