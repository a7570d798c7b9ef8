package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/storage"
)

func newFill(userID domain.UserID) domain.Fill {
	return domain.Fill{
		ID:       domain.FillID(uuid.New()),
		UserID:   userID,
		Template: domain.MainTemplate,
		Status:   domain.FillStatusPending,
	}
}

func TestPgSQL_StoreFills(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	userID := domain.UserID(uuid.New())

	t.Run("store single fill", func(t *testing.T) {
		t.Parallel()

		f := newFill(userID)
		res, err := pgSQL.StoreFills(ctx, f)
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.Equal(t, f.ID, res[0].ID)
		require.Equal(t, domain.MainTemplate, res[0].Template)
		require.Equal(t, domain.FillStatusPending, res[0].Status)
		require.Zero(t, res[0].Attempts)
		require.False(t, res[0].CreatedAt.IsZero())
	})

	t.Run("store multiple fills", func(t *testing.T) {
		t.Parallel()

		res, err := pgSQL.StoreFills(ctx, newFill(userID), newFill(userID))
		require.NoError(t, err)
		require.Len(t, res, 2)
	})

	t.Run("store empty fills", func(t *testing.T) {
		t.Parallel()

		res, err := pgSQL.StoreFills(ctx)
		require.NoError(t, err)
		require.Empty(t, res)
	})

	t.Run("duplicate id", func(t *testing.T) {
		t.Parallel()

		f := newFill(userID)
		_, err := pgSQL.StoreFills(ctx, f)
		require.NoError(t, err)
		_, err = pgSQL.StoreFills(ctx, f)
		require.Error(t, err)
	})
}

func TestPgSQL_UpdateFillByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := domain.UserID(uuid.New())
	stored, err := pgSQL.StoreFills(ctx, newFill(userID))
	require.NoError(t, err)
	id := stored[0].ID

	// processing with an attempt
	got, err := pgSQL.UpdateFillByID(ctx, id, storage.FillUpdates{
		Status:            domain.FillStatusProcessing,
		IncrementAttempts: true,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, domain.FillStatusProcessing, got.Status)
	require.EqualValues(t, 1, got.Attempts)
	require.False(t, got.UpdatedAt.IsZero())

	// failure below the threshold goes back to pending
	msg := "upstream unavailable"
	got, err = pgSQL.UpdateFillByID(ctx, id, storage.FillUpdates{
		Status:      domain.FillStatusFailed,
		LastError:   &msg,
		MaxAttempts: 2,
	})
	require.NoError(t, err)
	require.Equal(t, domain.FillStatusPending, got.Status)
	require.Equal(t, msg, got.LastError)

	// failure that reaches the threshold sticks
	got, err = pgSQL.UpdateFillByID(ctx, id, storage.FillUpdates{
		Status:            domain.FillStatusFailed,
		IncrementAttempts: true,
		MaxAttempts:       2,
	})
	require.NoError(t, err)
	require.Equal(t, domain.FillStatusFailed, got.Status)
	require.EqualValues(t, 2, got.Attempts)

	// completion with a result clears the error
	empty := ""
	got, err = pgSQL.UpdateFillByID(ctx, id, storage.FillUpdates{
		Status: domain.FillStatusCompleted,
		Result: &domain.FillResult{
			TenderName: "Gói thầu số 01",
			StepCount:  21,
			OutputName: domain.OutputFileName(domain.MainTemplate),
			Placeholders: []domain.PlaceholderOutcome{
				{Placeholder: domain.PlaceholderTenderName, Source: domain.SourceTBMT, Filled: true},
			},
		},
		LastError: &empty,
	})
	require.NoError(t, err)
	require.Equal(t, domain.FillStatusCompleted, got.Status)
	require.Empty(t, got.LastError)
	require.Equal(t, "Gói thầu số 01", got.Result.TenderName)
	require.Equal(t, 21, got.Result.StepCount)
	require.Len(t, got.Result.Placeholders, 1)

	// unknown id
	missing, err := pgSQL.UpdateFillByID(ctx, domain.FillID(uuid.New()), storage.FillUpdates{
		Status: domain.FillStatusCompleted,
	})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPgSQL_DeleteFill(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := domain.UserID(uuid.New())
	stored, err := pgSQL.StoreFills(ctx, newFill(userID))
	require.NoError(t, err)
	id := stored[0].ID

	// another user cannot delete it
	other, err := pgSQL.DeleteFill(ctx, domain.UserID(uuid.New()), id)
	require.NoError(t, err)
	require.Nil(t, other)

	deleted, err := pgSQL.DeleteFill(ctx, userID, id)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	require.Equal(t, id, deleted.ID)

	got, err := pgSQL.FillByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got)

	// updates no longer reach it
	updated, err := pgSQL.UpdateFillByID(ctx, id, storage.FillUpdates{Status: domain.FillStatusCompleted})
	require.NoError(t, err)
	require.Nil(t, updated)

	page, err := pgSQL.UserFills(ctx, userID, "", time.Time{}, 10)
	require.NoError(t, err)
	require.Empty(t, page.Fills)

	deleted2, err := pgSQL.DeleteFill(ctx, userID, id)
	require.NoError(t, err)
	require.Nil(t, deleted2)
}

func TestPgSQL_UserFills_Pagination(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := domain.UserID(uuid.New())
	fills := make([]domain.Fill, 0, 5)
	for range 5 {
		fills = append(fills, newFill(userID))
	}
	stored, err := pgSQL.StoreFills(ctx, fills...)
	require.NoError(t, err)
	require.Len(t, stored, 5)

	now := time.Now().UTC()
	for i, f := range stored {
		created := now.Add(-time.Duration(4-i) * time.Minute)
		_, err := pgSQL.DB.ExecContext(ctx, "UPDATE fills SET created_at = $1 WHERE id = $2", created, uuid.UUID(f.ID))
		require.NoError(t, err)
	}

	p1, err := pgSQL.UserFills(ctx, userID, "", time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, p1.Fills, 2)
	require.Equal(t, stored[4].ID, p1.Fills[0].ID)
	require.NotNil(t, p1.NextCursor)

	p2, err := pgSQL.UserFills(ctx, userID, "", *p1.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, p2.Fills, 2)
	require.NotNil(t, p2.NextCursor)

	p3, err := pgSQL.UserFills(ctx, userID, "", *p2.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, p3.Fills, 1)
	require.Nil(t, p3.NextCursor)
}

func TestPgSQL_UserFills_StatusFilter(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := domain.UserID(uuid.New())
	done := newFill(userID)
	done.Status = domain.FillStatusCompleted
	_, err := pgSQL.StoreFills(ctx, newFill(userID), newFill(userID), done)
	require.NoError(t, err)

	page, err := pgSQL.UserFills(ctx, userID, domain.FillStatusCompleted, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, page.Fills, 1)
	require.Equal(t, done.ID, page.Fills[0].ID)

	page, err = pgSQL.UserFills(ctx, userID, domain.FillStatusPending, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, page.Fills, 2)
}

func TestPgSQL_FillByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userA := domain.UserID(uuid.New())
	userB := domain.UserID(uuid.New())
	storedA, err := pgSQL.StoreFills(ctx, newFill(userA))
	require.NoError(t, err)
	storedB, err := pgSQL.StoreFills(ctx, newFill(userB))
	require.NoError(t, err)
	idA := storedA[0].ID
	idB := storedB[0].ID

	got, err := pgSQL.UserFillByID(ctx, userA, idA)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, idA, got.ID)

	// wrong user should not see other's fill
	got2, err := pgSQL.UserFillByID(ctx, userA, idB)
	require.NoError(t, err)
	require.Nil(t, got2)

	// unscoped lookup sees both
	got3, err := pgSQL.FillByID(ctx, idB)
	require.NoError(t, err)
	require.NotNil(t, got3)
	require.Equal(t, userB, got3.UserID)
}
