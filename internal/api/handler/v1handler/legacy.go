package v1handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

// The routes in this file keep the response shapes of the first release of
// the service, which clients integrate against.

// Version is reported by the health endpoints.
const Version = "1.0.0"

// DetailResponse is the error body of the synchronous fill routes.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Root describes the service.
func (h Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"message":      "Vietnamese Procurement Document API - Walking Skeleton",
		"status":       "running",
		"template":     domain.MainTemplate,
		"placeholders": len(domain.MainTemplateInfo().Placeholders),
		"endpoints": map[string]string{
			"process": "/api/process-document",
			"health":  "/api/health",
			"docs":    "/docs",
		},
	})
}

// Health reports that the service is up.
func (h Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Walking Skeleton API operational",
		"version": Version,
	})
}

// Templates lists the implemented template and the planned ones.
func (h Handler) Templates(w http.ResponseWriter, r *http.Request) {
	templates := h.deps.Filler.Templates()

	res := map[string]any{
		"future_templates": map[string]any{
			"count":  domain.PlannedTemplateCount,
			"status": "🔄 TODO",
			"note":   "Will be added incrementally after Teams bot integration",
		},
		"templates": templates,
	}
	for _, t := range templates {
		if t.Name != domain.MainTemplate {
			continue
		}
		tokens := make([]string, 0, len(t.Placeholders))
		for _, p := range t.Placeholders {
			tokens = append(tokens, p.Placeholder.Token())
		}
		pdfs := make([]string, 0, len(t.RequiredSources))
		for _, s := range t.RequiredSources {
			pdfs = append(pdfs, s.FileName())
		}
		res["walking_skeleton"] = map[string]any{
			"template":      t.Name,
			"status":        "✅ IMPLEMENTED",
			"placeholders":  tokens,
			"required_pdfs": pdfs,
		}
	}

	writeJSON(r.Context(), w, http.StatusOK, res)
}

// ProcessDocument fills the template from the uploaded PDFs and returns the
// document in the response.
func (h Handler) ProcessDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger.Info(ctx, "synchronous fill started")

	uploads, err := h.readUploads(w, r)
	if err != nil {
		h.writeDetail(w, r, err)

		return
	}

	out, err := h.deps.Filler.FillNow(ctx, uploads)
	if err != nil {
		h.writeDetail(w, r, err)

		return
	}

	name := out.Result.OutputName
	if name == "" {
		name = domain.OutputFileName(domain.MainTemplate)
	}
	logger.Info(ctx, "synchronous fill completed", zap.Int("size", len(out.Document)))

	w.Header().Set("Content-Type", DocxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Document)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Document)
}

// writeDetail reports client errors as 400 and everything else as 500.
func (h Handler) writeDetail(w http.ResponseWriter, r *http.Request, err error) {
	if serrors.KindOf(err) == serrors.ErrBadRequest {
		logger.Info(r.Context(), "synchronous fill rejected", zap.Error(err))
		writeJSON(r.Context(), w, http.StatusBadRequest, DetailResponse{Detail: serrors.MessageOf(err)})

		return
	}

	logger.Error(r.Context(), "Processing failed", zap.Error(err))
	writeJSON(r.Context(), w, http.StatusInternalServerError, DetailResponse{Detail: "Processing failed: " + err.Error()})
}
