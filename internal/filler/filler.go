package filler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/internal/pipeline"
	"github.com/sonnq3591/plg-hsdt/pkg/blob"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
	"github.com/sonnq3591/plg-hsdt/pkg/storage"
)

var pdfMagic = []byte("%PDF-") //nolint: gochecknoglobals

// Options configure how fills are queued and processed.
// These settings are typically derived from application configuration.
type Options struct {
	// MaxAttempts is the number of pipeline runs after which a failing fill is
	// marked failed.
	MaxAttempts int
	// WorkspaceDir is where each run gets its temporary folder.
	WorkspaceDir string
	// KeepArtifacts stores the intermediate files of asynchronous fills.
	KeepArtifacts bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxAttempts:   cfg.Worker.MaxAttempts,
		WorkspaceDir:  cfg.Storage.WorkspaceDir,
		KeepArtifacts: cfg.Pipeline.KeepArtifacts,
	}
}

// filler is the concrete implementation of the Filler interface.
// It coordinates the fill records, the stored documents and the pipeline.
type filler struct {
	options Options
	storage storage.Storage
	blobs   blob.Store
	runner  pipeline.Runner
}

func fillPrefix(id domain.FillID) string { return path.Join("fills", id.String()) }

func inputKey(id domain.FillID, source domain.SourceKind) string {
	return path.Join(fillPrefix(id), "input", source.FileName())
}

func outputKey(id domain.FillID, name string) string {
	return path.Join(fillPrefix(id), "output", name)
}

// artifactSink stores the intermediate files of one fill next to its inputs.
type artifactSink struct {
	blobs blob.Store
	id    domain.FillID
}

func (a artifactSink) PutArtifact(ctx context.Context, ph domain.Placeholder, name string, data []byte) error {
	key := path.Join(fillPrefix(a.id), "artifacts", string(ph), name)
	if _, err := a.blobs.Put(ctx, key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("could not store artifact %s: %w", key, err)
	}

	return nil
}

// validate checks that every required document is present and looks like a PDF.
func validate(uploads Uploads) error {
	var missing []string
	for _, k := range domain.RequiredSources {
		if len(uploads[k]) == 0 {
			missing = append(missing, k.FileName())
		}
	}
	if len(missing) > 0 {
		return serrors.With(serrors.ErrBadRequest,
			"Missing required PDF files: [%s]", strings.Join(missing, ", "))
	}

	for _, k := range domain.RequiredSources {
		if !bytes.HasPrefix(uploads[k], pdfMagic) {
			return serrors.With(serrors.ErrBadRequest, "%s is not a PDF document", k.FileName())
		}
	}

	return nil
}

// Enqueue stores the uploaded documents and queues a fill for them. The fill
// record and its job are inserted in one transaction; the stored documents
// are removed again when that transaction fails.
func (f filler) Enqueue(ctx context.Context, userID domain.UserID, uploads Uploads) (*domain.Fill, error) {
	if err := validate(uploads); err != nil {
		return nil, err
	}

	id := domain.FillID(uuid.New())
	for _, k := range domain.RequiredSources {
		if _, err := f.blobs.Put(ctx, inputKey(id, k), bytes.NewReader(uploads[k])); err != nil {
			f.removeBlobs(ctx, id)

			return nil, fmt.Errorf("could not store %s: %w", k.FileName(), err)
		}
	}

	var fill *domain.Fill
	if err := f.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreFills(ctx, domain.Fill{
			ID:       id,
			UserID:   userID,
			Template: domain.MainTemplate,
			Status:   domain.FillStatusPending,
		})
		if err != nil {
			return fmt.Errorf("could not store fill: %w", err)
		}
		fill = &res[0]

		if _, err := tx.AddJob(ctx, JobArgs{
			FillID:      id,
			maxAttempts: f.options.MaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		f.removeBlobs(ctx, id)

		return nil, fmt.Errorf("could not enqueue fill: %w", err)
	}

	logger.Info(ctx, "fill enqueued", zap.String("fillID", id.String()))

	return fill, nil
}

// Process runs the pipeline for a queued fill. A fill that is already
// completed is left alone. Failures are recorded on the fill and returned so
// the caller can decide whether to retry.
func (f filler) Process(ctx context.Context, fillID domain.FillID) error {
	fill, err := f.storage.FillByID(ctx, fillID)
	if err != nil {
		return fmt.Errorf("could not get fill: %w", err)
	}
	if fill == nil {
		return serrors.With(serrors.ErrNotFound, "fill not found")
	}

	switch fill.Status {
	case domain.FillStatusCompleted:
		logger.Debug(ctx, "fill already completed")

		return nil
	case domain.FillStatusFailed:
		logger.Debug(ctx, "fill already failed")

		return nil
	case domain.FillStatusPending, domain.FillStatusProcessing:
	}

	fill, err = f.storage.UpdateFillByID(ctx, fillID, storage.FillUpdates{
		Status:            domain.FillStatusProcessing,
		IncrementAttempts: true,
	})
	if err != nil {
		return fmt.Errorf("could not mark fill as processing: %w", err)
	}
	if fill == nil {
		return serrors.With(serrors.ErrNotFound, "fill not found")
	}

	out, err := f.run(ctx, fill)
	if err != nil {
		return f.fail(ctx, fill, err)
	}

	if _, err := f.blobs.Put(ctx, outputKey(fillID, out.Result.OutputName), bytes.NewReader(out.Document)); err != nil {
		return f.fail(ctx, fill, fmt.Errorf("could not store output: %w", err))
	}

	cleared := ""
	updated, err := f.storage.UpdateFillByID(ctx, fillID, storage.FillUpdates{
		Status:    domain.FillStatusCompleted,
		Result:    &out.Result,
		LastError: &cleared,
	})
	if err != nil {
		return fmt.Errorf("could not mark fill as completed: %w", err)
	}
	if updated == nil {
		// deleted while running
		f.removeBlobs(ctx, fillID)

		return serrors.With(serrors.ErrNotFound, "fill not found")
	}

	logger.Info(ctx, "fill completed",
		zap.Uint("attempts", updated.Attempts),
		zap.Duration("duration", out.Result.Duration()))

	return nil
}

// run copies the stored inputs into a fresh workspace and runs the pipeline there.
func (f filler) run(ctx context.Context, fill *domain.Fill) (*pipeline.Output, error) {
	ws, err := f.workspace(fill.ID.String())
	if err != nil {
		return nil, err
	}
	defer f.removeWorkspace(ctx, ws)

	inputs := make(map[domain.SourceKind]string, len(domain.RequiredSources))
	for _, k := range domain.RequiredSources {
		dst := filepath.Join(ws, k.FileName())
		if err := blob.CopyTo(ctx, f.blobs, inputKey(fill.ID, k), dst); err != nil {
			return nil, fmt.Errorf("could not load %s: %w", k.FileName(), err)
		}
		inputs[k] = dst
	}

	job := pipeline.Job{Template: fill.Template, Inputs: inputs}
	if f.options.KeepArtifacts {
		job.Artifacts = artifactSink{blobs: f.blobs, id: fill.ID}
	}

	out, err := f.runner.Run(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("could not run pipeline: %w", err)
	}

	return out, nil
}

// fail records err on the fill and returns it. Retryable errors only fail the
// fill once its attempts reach MaxAttempts; until then it goes back to pending.
func (f filler) fail(ctx context.Context, fill *domain.Fill, cause error) error {
	ctx = context.WithoutCancel(ctx)

	msg := cause.Error()
	updates := storage.FillUpdates{
		Status:    domain.FillStatusFailed,
		LastError: &msg,
	}
	if !serrors.Permanent(cause) && f.options.MaxAttempts > 0 {
		updates.MaxAttempts = uint(f.options.MaxAttempts) //nolint: gosec
	}

	var runErr *pipeline.RunError
	if errors.As(cause, &runErr) {
		updates.Result = &runErr.Result
	}

	updated, err := f.storage.UpdateFillByID(ctx, fill.ID, updates)
	switch {
	case err != nil:
		logger.Error(ctx, "could not record fill failure", zap.Error(err))
	case updated != nil:
		logger.Warn(ctx, "fill failed",
			zap.String("status", string(updated.Status)),
			zap.Uint("attempts", updated.Attempts),
			zap.Error(cause))
	}

	return cause
}

// UserFills returns a page of fills for the given user filtered by status.
// It supports cursor-based pagination using an RFC3339 timestamp string and
// returns the next cursor when more results are available.
func (f filler) UserFills(ctx context.Context,
	userID domain.UserID,
	status domain.FillStatus,
	cursor string,
	limit uint) ([]domain.Fill, string, error) {
	if status != "" && !status.Valid() {
		return nil, "", serrors.With(serrors.ErrBadRequest, "invalid status %q", status)
	}

	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339Nano, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := f.storage.UserFills(ctx, userID, status, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user fills: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339Nano)
	}

	return page.Fills, next, nil
}

// Result fetches a single fill by ID for the given user. It returns a
// not-found error when no matching fill exists.
func (f filler) Result(ctx context.Context, userID domain.UserID, fillID domain.FillID) (*domain.Fill, error) {
	res, err := f.storage.UserFillByID(ctx, userID, fillID)
	if err != nil {
		return nil, fmt.Errorf("could not get fill: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "fill not found")
	}

	return res, nil
}

// Output opens the filled document of a completed fill and returns it with
// its download name.
func (f filler) Output(ctx context.Context, userID domain.UserID, fillID domain.FillID) (io.ReadCloser, string, error) {
	fill, err := f.Result(ctx, userID, fillID)
	if err != nil {
		return nil, "", err
	}
	if fill.Status != domain.FillStatusCompleted {
		return nil, "", serrors.With(serrors.ErrConflict, "fill is %s", strings.ToLower(string(fill.Status)))
	}

	name := fill.Result.OutputName
	if name == "" {
		name = domain.OutputFileName(fill.Template)
	}

	r, err := f.blobs.Open(ctx, outputKey(fillID, name))
	if err != nil {
		return nil, "", fmt.Errorf("could not open output: %w", err)
	}

	return r, name, nil
}

// Delete removes a fill belonging to the given user together with its
// documents. A queued job for the fill finds nothing to do and is dropped.
func (f filler) Delete(ctx context.Context, userID domain.UserID, fillID domain.FillID) error {
	res, err := f.storage.DeleteFill(ctx, userID, fillID)
	if err != nil {
		return fmt.Errorf("could not delete fill: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "fill not found")
	}

	f.removeBlobs(ctx, fillID)

	return nil
}

// FillNow runs the pipeline on the uploads right away in a temporary
// workspace that is removed afterwards.
func (f filler) FillNow(ctx context.Context, uploads Uploads) (*pipeline.Output, error) {
	if err := validate(uploads); err != nil {
		return nil, err
	}

	ws, err := f.workspace("sync")
	if err != nil {
		return nil, err
	}
	defer f.removeWorkspace(ctx, ws)

	inputs := make(map[domain.SourceKind]string, len(uploads))
	for _, k := range domain.RequiredSources {
		dst := filepath.Join(ws, k.FileName())
		if err := os.WriteFile(dst, uploads[k], 0o600); err != nil {
			return nil, fmt.Errorf("could not save %s: %w", k.FileName(), err)
		}
		inputs[k] = dst
	}

	out, err := f.runner.Run(ctx, pipeline.Job{Template: domain.MainTemplate, Inputs: inputs})
	if err != nil {
		return nil, fmt.Errorf("could not run pipeline: %w", err)
	}

	return out, nil
}

// Templates lists the templates that can be filled.
func (f filler) Templates() []domain.TemplateInfo {
	return []domain.TemplateInfo{domain.MainTemplateInfo()}
}

func (f filler) workspace(name string) (string, error) {
	if err := os.MkdirAll(f.options.WorkspaceDir, 0o750); err != nil {
		return "", fmt.Errorf("could not create workspace root: %w", err)
	}

	ws, err := os.MkdirTemp(f.options.WorkspaceDir, "fill-"+name+"-")
	if err != nil {
		return "", fmt.Errorf("could not create workspace: %w", err)
	}

	return ws, nil
}

func (f filler) removeWorkspace(ctx context.Context, ws string) {
	if err := os.RemoveAll(ws); err != nil {
		logger.Warn(ctx, "could not remove workspace", zap.String("path", ws), zap.Error(err))
	}
}

func (f filler) removeBlobs(ctx context.Context, id domain.FillID) {
	if err := f.blobs.DeletePrefix(context.WithoutCancel(ctx), fillPrefix(id)); err != nil {
		logger.Warn(ctx, "could not remove fill documents", zap.String("fillID", id.String()), zap.Error(err))
	}
}

// New creates a new Filler backed by the provided storage, document store and
// pipeline, configured with the given options.
func New(storage storage.Storage, blobs blob.Store, runner pipeline.Runner, options Options) Filler {
	return &filler{
		options: options,
		storage: storage,
		blobs:   blobs,
		runner:  runner,
	}
}
