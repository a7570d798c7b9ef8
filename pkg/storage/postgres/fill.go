package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/storage"
)

const (
	fillsTable = "fills"
)

var _ storage.FillStorage = (*PgSQL)(nil)

func (p *PgSQL) StoreFills(ctx context.Context, fills ...domain.Fill) ([]domain.Fill, error) {
	if len(fills) == 0 {
		return nil, nil
	}

	pgFills, err := domainFillsToPg(fills)
	if err != nil {
		return nil, err
	}

	var result []PgFill
	if err := p.Builder.Insert(fillsTable).
		Rows(pgFills).
		Returning(&PgFill{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store fills into pg: %w", err)
	}

	return pgFillsToDomain(result)
}

// UpdateFillByID applies the non-zero fields of updates to a live fill.
// When a Failed status comes with MaxAttempts, the database decides between
// Failed and Pending from the attempts column so concurrent retries agree.
func (p *PgSQL) UpdateFillByID(ctx context.Context,
	id domain.FillID,
	updates storage.FillUpdates) (*domain.Fill, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}

	attempts := "attempts"
	if updates.IncrementAttempts {
		attempts = "attempts + 1"
		rec["attempts"] = goqu.L(attempts)
	}

	switch {
	case updates.Status == domain.FillStatusFailed && updates.MaxAttempts > 0:
		rec["status"] = goqu.L(
			fmt.Sprintf("CASE WHEN %s >= ? THEN ? ELSE ? END", attempts),
			updates.MaxAttempts,
			string(domain.FillStatusFailed),
			string(domain.FillStatusPending),
		)
	case updates.Status != "":
		rec["status"] = string(updates.Status)
	}

	if updates.Result != nil {
		b, err := json.Marshal(updates.Result)
		if err != nil {
			return nil, fmt.Errorf("could not marshal result: %w", err)
		}

		rec["result"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			// set to NULL when empty string provided
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	var row PgFill
	found, err := p.Builder.Update(fillsTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgFill{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update fill by id in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteFill performs a soft delete by setting deleted_at timestamp
// for a given fill id and user, returning the deleted record.
func (p *PgSQL) DeleteFill(ctx context.Context, userID domain.UserID, id domain.FillID) (*domain.Fill, error) {
	var row PgFill
	found, err := p.Builder.Update(fillsTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgFill{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete fill in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UserFills returns a list of fills for a user filtered by optional status and
// cursor, limited by limit. Results are ordered by created_at DESC, id DESC.
func (p *PgSQL) UserFills(ctx context.Context,
	userID domain.UserID,
	status domain.FillStatus,
	cursor time.Time,
	limit uint) (storage.UserFills, error) {
	w := []goqu.Expression{
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	}
	if status != "" {
		w = append(w, goqu.I("status").Eq(string(status)))
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	ds := p.Builder.From(fillsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit + 1)

	var rows []PgFill
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.UserFills{}, fmt.Errorf("could not fetch user fills from pg: %w", err)
	}

	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		if limit > 0 {
			nextCursor = &rows[len(rows)-1].CreatedAt
		}
	}

	domainRows, err := pgFillsToDomain(rows)
	if err != nil {
		return storage.UserFills{}, err
	}

	return storage.UserFills{
		Fills:      domainRows,
		NextCursor: nextCursor,
	}, nil
}

// FillByID returns a fill by its ID, excluding soft-deleted rows.
func (p *PgSQL) FillByID(ctx context.Context, id domain.FillID) (*domain.Fill, error) {
	return p.fillWhere(ctx, goqu.I("id").Eq(uuid.UUID(id)))
}

// UserFillByID is FillByID restricted to fills owned by userID.
func (p *PgSQL) UserFillByID(ctx context.Context, userID domain.UserID, id domain.FillID) (*domain.Fill, error) {
	return p.fillWhere(ctx,
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("user_id").Eq(uuid.UUID(userID)),
	)
}

func (p *PgSQL) fillWhere(ctx context.Context, w ...goqu.Expression) (*domain.Fill, error) {
	var row PgFill
	found, err := p.Builder.From(fillsTable).
		Where(append(w, goqu.I("deleted_at").IsNull())...).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch fill by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
