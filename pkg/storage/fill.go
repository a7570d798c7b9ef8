package storage

import (
	"context"
	"time"

	"github.com/sonnq3591/plg-hsdt/pkg/domain"
)

// FillUpdates describes a set of optional fields that can be applied to an
// existing fill during an update. Zero values leave the column unchanged.
type FillUpdates struct {
	// Status is the new status to set for the fill.
	Status domain.FillStatus
	// Result, when provided, replaces the stored result payload.
	Result *domain.FillResult
	// LastError, when provided, sets the last error text. An empty string value
	// indicates the error should be cleared (set to NULL).
	LastError *string
	// IncrementAttempts adds one to the attempts counter.
	IncrementAttempts bool
	// MaxAttempts, when provided alongside a Failed status, only lets the fill
	// fail once its attempts (after any increment) reach this threshold; below
	// it the fill goes back to Pending. A zero value disables this guard.
	MaxAttempts uint
}

// UserFills groups a page of fills returned for a user together with an
// optional NextCursor used for pagination.
type UserFills struct {
	// Fills contains the current page of fill records.
	Fills []domain.Fill
	// NextCursor points to the timestamp to be used as the cursor for fetching
	// the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// FillStorage defines CRUD and query operations related to fills. Soft-deleted
// fills are invisible to every read and update.
type FillStorage interface {
	// StoreFills inserts one or more fills with their caller generated IDs and
	// returns the stored rows (including generated fields).
	StoreFills(ctx context.Context, fills ...domain.Fill) ([]domain.Fill, error)
	// UpdateFillByID updates a single fill and returns the updated row, or nil
	// when it does not exist. updated_at is set automatically.
	UpdateFillByID(ctx context.Context, ID domain.FillID, updates FillUpdates) (*domain.Fill, error)
	// FillByID fetches a fill regardless of its owner. Returns nil when not found.
	FillByID(ctx context.Context, ID domain.FillID) (*domain.Fill, error)
	// UserFillByID fetches a fill owned by userID. Returns nil when not found.
	UserFillByID(ctx context.Context, userID domain.UserID, ID domain.FillID) (*domain.Fill, error)
	// UserFills returns a page of fills for a user created before the optional
	// cursor time, newest first, limited by the given limit. If status is
	// non-empty, results are filtered to records with the given status.
	UserFills(ctx context.Context,
		userID domain.UserID,
		status domain.FillStatus,
		cursor time.Time,
		limit uint) (UserFills, error)
	// DeleteFill performs a soft delete for the given fill ID and user ID and
	// returns the deleted fill, or nil if it was not found.
	DeleteFill(ctx context.Context, userID domain.UserID, ID domain.FillID) (*domain.Fill, error)
}
