package domain

import (
	"time"

	"github.com/google/uuid"
)

// FillID uniquely identifies a fill request.
// It wraps uuid.UUID to provide type safety at the domain layer.
type FillID uuid.UUID

// String returns the canonical UUID representation.
func (id FillID) String() string { return uuid.UUID(id).String() }

// FillStatus represents the lifecycle state of a fill.
type FillStatus string

const (
	// FillStatusPending indicates the fill is queued and waiting for a worker.
	FillStatusPending FillStatus = "PENDING"
	// FillStatusProcessing indicates a worker is currently running the pipeline.
	FillStatusProcessing FillStatus = "PROCESSING"
	// FillStatusCompleted indicates the output document is available.
	FillStatusCompleted FillStatus = "COMPLETED"
	// FillStatusFailed indicates the fill gave up; see LastError and Attempts.
	FillStatusFailed FillStatus = "FAILED"
)

// Valid reports whether s is one of the known statuses.
func (s FillStatus) Valid() bool {
	switch s {
	case FillStatusPending, FillStatusProcessing, FillStatusCompleted, FillStatusFailed:
		return true
	default:
		return false
	}
}

// PlaceholderOutcome records what happened to one placeholder.
type PlaceholderOutcome struct {
	Placeholder Placeholder `json:"placeholder"`
	Source      SourceKind  `json:"source"`
	Filled      bool        `json:"filled"`
	// Detail is a short human readable summary (the inserted value for inline
	// placeholders, the number of inserted blocks otherwise).
	Detail string `json:"detail,omitempty"`
	// Blocks is the number of paragraphs and tables inserted.
	Blocks int    `json:"blocks,omitempty"`
	Error  string `json:"error,omitempty"`
}

// FillResult is the outcome of a completed pipeline run.
type FillResult struct {
	TenderName   string               `json:"tenderName,omitempty"`
	StepCount    int                  `json:"stepCount,omitempty"`
	Placeholders []PlaceholderOutcome `json:"placeholders,omitempty"`
	OutputName   string               `json:"outputName,omitempty"`
	OutputSize   int64                `json:"outputSize,omitempty"`
	StartedAt    time.Time            `json:"startedAt,omitzero"`
	FinishedAt   time.Time            `json:"finishedAt,omitzero"`
}

// Duration returns how long the run took, or zero when unknown.
func (r FillResult) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}

	return r.FinishedAt.Sub(r.StartedAt)
}

// Fill represents a single request to fill a template from uploaded tender
// documents, and its current state.
type Fill struct {
	// ID is the unique identifier of the fill.
	ID FillID `json:"id"`
	// UserID is the identifier of the user who submitted the documents.
	UserID UserID `json:"userId"`

	// Template is the name of the template being filled.
	Template string `json:"template"`
	// Status is the current lifecycle state.
	Status FillStatus `json:"status"`
	// Result is filled in once the pipeline completes.
	Result FillResult `json:"result"`

	// Attempts is the number of pipeline runs so far.
	Attempts uint `json:"attempts"`
	// LastError stores the most recent processing error, if any.
	LastError string `json:"lastError,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// DeletedAt marks when the fill was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}

// MarshalText encodes the id in its canonical UUID form.
func (id FillID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a UUID.
func (id *FillID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
