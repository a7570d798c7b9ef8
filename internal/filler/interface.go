// Package filler manages fill requests: it stores uploaded tender documents,
// queues them for the pipeline and serves the finished documents.
package filler

import (
	"context"
	"io"

	"github.com/sonnq3591/plg-hsdt/internal/pipeline"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
)

// Uploads holds the content of the uploaded PDFs by source.
type Uploads map[domain.SourceKind][]byte

//go:generate mockgen -package mockfiller -source=interface.go -destination=mock/mockfiller.go *
type Filler interface {
	Enqueue(ctx context.Context, userID domain.UserID, uploads Uploads) (*domain.Fill, error)
	Process(ctx context.Context, fillID domain.FillID) error
	UserFills(ctx context.Context,
		userID domain.UserID,
		status domain.FillStatus,
		cursor string,
		limit uint) ([]domain.Fill, string, error)
	Result(ctx context.Context, userID domain.UserID, fillID domain.FillID) (*domain.Fill, error)
	Output(ctx context.Context, userID domain.UserID, fillID domain.FillID) (io.ReadCloser, string, error)
	Delete(ctx context.Context, userID domain.UserID, fillID domain.FillID) error
	FillNow(ctx context.Context, uploads Uploads) (*pipeline.Output, error)
	Templates() []domain.TemplateInfo
}
