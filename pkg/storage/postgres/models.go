package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sonnq3591/plg-hsdt/pkg/domain"
)

type PgFill struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`

	Template string          `db:"template"`
	Status   string          `db:"status"`
	Result   json.RawMessage `db:"result"`

	Attempts  uint           `db:"attempts"   goqu:"skipinsert"`
	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgFill) ToDomain() (*domain.Fill, error) {
	var result domain.FillResult
	if len(p.Result) > 0 {
		if err := json.Unmarshal(p.Result, &result); err != nil {
			return nil, fmt.Errorf("could not unmarshal fill result: %w", err)
		}
	}

	return &domain.Fill{
		ID:        domain.FillID(p.ID),
		UserID:    domain.UserID(p.UserID),
		Template:  p.Template,
		Status:    domain.FillStatus(p.Status),
		Result:    result,
		Attempts:  p.Attempts,
		LastError: p.LastError.String,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
		DeletedAt: p.DeletedAt.Time,
	}, nil
}

func (p *PgFill) FromDomain(fill domain.Fill) error {
	result, err := json.Marshal(fill.Result)
	if err != nil {
		return fmt.Errorf("could not marshal fill result: %w", err)
	}

	*p = PgFill{
		ID:       uuid.UUID(fill.ID),
		UserID:   uuid.UUID(fill.UserID),
		Template: fill.Template,
		Status:   string(fill.Status),
		Result:   result,
		Attempts: fill.Attempts,
		LastError: sql.NullString{
			String: fill.LastError,
			Valid:  fill.LastError != "",
		},
		CreatedAt: fill.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  fill.UpdatedAt,
			Valid: !fill.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  fill.DeletedAt,
			Valid: !fill.DeletedAt.IsZero(),
		},
	}

	return nil
}

func domainFillsToPg(fills []domain.Fill) ([]PgFill, error) {
	out := make([]PgFill, len(fills))
	for i := range out {
		if err := out[i].FromDomain(fills[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgFillsToDomain(fills []PgFill) ([]domain.Fill, error) {
	out := make([]domain.Fill, 0, len(fills))
	for _, fill := range fills {
		d, err := fill.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
