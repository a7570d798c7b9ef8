package v1handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/report"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// DocxContentType is the media type of filled documents.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// FillList is a page of fills.
type FillList struct {
	Items      []domain.Fill `json:"items"`
	NextCursor *string       `json:"nextCursor"`
}

func fillIDParam(r *http.Request) (domain.FillID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return domain.FillID{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid fill id")
	}

	return domain.FillID(id), nil
}

// CreateFill stores the uploaded documents and queues them for filling.
func (h Handler) CreateFill(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.readUploads(w, r)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	f, err := h.deps.Filler.Enqueue(r.Context(), UserFromContext(r.Context()), uploads)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	w.Header().Set("Location", "/v1/fills/"+f.ID.String())
	writeJSON(r.Context(), w, http.StatusAccepted, f)
}

// ListFills returns a paginated list of fills.
func (h Handler) ListFills(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := DefaultLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxLimit {
			h.WriteError(w, r, serrors.With(serrors.ErrBadRequest, "limit must be between 1 and %d", MaxLimit))

			return
		}
		limit = n
	}

	fills, nextCursor, err := h.deps.Filler.UserFills(r.Context(),
		UserFromContext(r.Context()),
		domain.FillStatus(q.Get("status")),
		q.Get("cursor"),
		uint(limit)) //nolint: gosec
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	res := FillList{Items: fills}
	if res.Items == nil {
		res.Items = []domain.Fill{}
	}
	if nextCursor != "" {
		res.NextCursor = &nextCursor
	}

	writeJSON(r.Context(), w, http.StatusOK, res)
}

// GetFill returns details of a fill by ID.
func (h Handler) GetFill(w http.ResponseWriter, r *http.Request) {
	id, err := fillIDParam(r)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	f, err := h.deps.Filler.Result(r.Context(), UserFromContext(r.Context()), id)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, f)
}

// GetFillOutput downloads the filled document.
func (h Handler) GetFillOutput(w http.ResponseWriter, r *http.Request) {
	id, err := fillIDParam(r)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	rc, name, err := h.deps.Filler.Output(r.Context(), UserFromContext(r.Context()), id)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", DocxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		logger.Warn(r.Context(), "could not send output", zap.Error(err))
	}
}

// GetFillReport returns a markdown summary of a fill.
func (h Handler) GetFillReport(w http.ResponseWriter, r *http.Request) {
	id, err := fillIDParam(r)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	f, err := h.deps.Filler.Result(r.Context(), UserFromContext(r.Context()), id)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	md, err := report.String(*f)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, md)
}

// DeleteFill deletes a fill by ID.
func (h Handler) DeleteFill(w http.ResponseWriter, r *http.Request) {
	id, err := fillIDParam(r)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	if err := h.deps.Filler.Delete(r.Context(), UserFromContext(r.Context()), id); err != nil {
		h.WriteError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
