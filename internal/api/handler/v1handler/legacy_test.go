package v1handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sonnq3591/plg-hsdt/internal/api/handler/v1handler"
	"github.com/sonnq3591/plg-hsdt/internal/filler"
	mockfiller "github.com/sonnq3591/plg-hsdt/internal/filler/mock"
	"github.com/sonnq3591/plg-hsdt/internal/pipeline"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

type part struct {
	field, file, body string
}

func multipartRequest(t *testing.T, target string, parts ...part) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		w, err := mw.CreateFormFile(p.field, p.file)
		require.NoError(t, err)
		_, err = w.Write([]byte(p.body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func allParts() []part {
	parts := make([]part, 0, len(domain.RequiredSources))
	for _, k := range domain.RequiredSources {
		parts = append(parts, part{k.FormField(), k.FileName(), "%PDF-" + string(k)})
	}

	return parts
}

func newHandler(t *testing.T, opts v1handler.Options) (*mockfiller.MockFiller, *v1handler.Handler) {
	t.Helper()

	f := mockfiller.NewMockFiller(gomock.NewController(t))

	return f, v1handler.New(v1handler.Deps{Filler: f}, opts)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))

	return v
}

func TestRoot(t *testing.T) {
	_, h := newHandler(t, v1handler.Options{})

	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	require.Equal(t, "running", body["status"])
	require.Equal(t, "02_MUC_DO_HIEU_BIET", body["template"])
	require.EqualValues(t, 5, body["placeholders"])
	require.Equal(t, "/api/process-document", body["endpoints"].(map[string]any)["process"])
}

func TestHealth(t *testing.T) {
	_, h := newHandler(t, v1handler.Options{})

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]string{
		"status":  "healthy",
		"message": "Walking Skeleton API operational",
		"version": "1.0.0",
	}, decode[map[string]string](t, rec))
}

func TestTemplates(t *testing.T) {
	f, h := newHandler(t, v1handler.Options{})
	f.EXPECT().Templates().Return([]domain.TemplateInfo{domain.MainTemplateInfo()})

	rec := httptest.NewRecorder()
	h.Templates(rec, httptest.NewRequest(http.MethodGet, "/api/templates", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		WalkingSkeleton struct {
			Template     string   `json:"template"`
			Status       string   `json:"status"`
			Placeholders []string `json:"placeholders"`
			RequiredPDFs []string `json:"required_pdfs"`
		} `json:"walking_skeleton"`
		FutureTemplates struct {
			Count int    `json:"count"`
			Note  string `json:"note"`
		} `json:"future_templates"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "02_MUC_DO_HIEU_BIET", body.WalkingSkeleton.Template)
	require.Equal(t, "✅ IMPLEMENTED", body.WalkingSkeleton.Status)
	require.Equal(t, []string{
		"{{ten_goi_thau}}", "{{pham_vi_cung_cap}}", "{{can_cu_phap_ly}}",
		"{{muc_dich_cong_viec}}", "{{cac_buoc_thuc_hien}}",
	}, body.WalkingSkeleton.Placeholders)
	require.Equal(t, []string{"TBMT.pdf", "BMMT.pdf", "CHUONG_III.pdf", "CHUONG_V.pdf", "HSMT.pdf"},
		body.WalkingSkeleton.RequiredPDFs)
	require.Equal(t, 14, body.FutureTemplates.Count)
}

func TestProcessDocument(t *testing.T) {
	f, h := newHandler(t, v1handler.Options{})

	f.EXPECT().FillNow(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, uploads filler.Uploads) (*pipeline.Output, error) {
			require.Len(t, uploads, 5)
			require.Equal(t, "%PDF-CHUONG_III", string(uploads[domain.SourceChuongIII]))

			return &pipeline.Output{
				Document: []byte("PK docx"),
				Result:   domain.FillResult{OutputName: "02_MUC_DO_HIEU_BIET_output.docx"},
			}, nil
		},
	)

	rec := httptest.NewRecorder()
	h.ProcessDocument(rec, multipartRequest(t, "/api/process-document", allParts()...))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, v1handler.DocxContentType, rec.Header().Get("Content-Type"))
	require.Equal(t, "attachment; filename=02_MUC_DO_HIEU_BIET_output.docx", rec.Header().Get("Content-Disposition"))
	require.Equal(t, "PK docx", rec.Body.String())
}

func TestProcessDocument_MatchesByFileName(t *testing.T) {
	f, h := newHandler(t, v1handler.Options{})

	parts := []part{
		{"files", "TBMT.pdf", "%PDF-a"},
		{"files", `C:\upload\bmmt.pdf`, "%PDF-b"},
		{"files", "notes.txt", "ignored"},
	}
	f.EXPECT().FillNow(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, uploads filler.Uploads) (*pipeline.Output, error) {
			require.Len(t, uploads, 2)
			require.Equal(t, "%PDF-b", string(uploads[domain.SourceBMMT]))

			return nil, serrors.With(serrors.ErrBadRequest, "Missing required PDF files: [CHUONG_III.pdf, CHUONG_V.pdf, HSMT.pdf]")
		},
	)

	rec := httptest.NewRecorder()
	h.ProcessDocument(rec, multipartRequest(t, "/api/process-document", parts...))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, v1handler.DetailResponse{
		Detail: "Missing required PDF files: [CHUONG_III.pdf, CHUONG_V.pdf, HSMT.pdf]",
	}, decode[v1handler.DetailResponse](t, rec))
}

func TestProcessDocument_Failure(t *testing.T) {
	f, h := newHandler(t, v1handler.Options{})

	f.EXPECT().FillNow(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrUnprocessable, "placeholder {{cac_buoc_thuc_hien}} not found in template"))

	rec := httptest.NewRecorder()
	h.ProcessDocument(rec, multipartRequest(t, "/api/process-document", allParts()...))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Processing failed: placeholder {{cac_buoc_thuc_hien}} not found in template",
		decode[v1handler.DetailResponse](t, rec).Detail)
}

func TestProcessDocument_NotMultipart(t *testing.T) {
	_, h := newHandler(t, v1handler.Options{})

	rec := httptest.NewRecorder()
	h.ProcessDocument(rec, httptest.NewRequest(http.MethodPost, "/api/process-document", bytes.NewBufferString("{}")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessDocument_TooLarge(t *testing.T) {
	_, h := newHandler(t, v1handler.Options{MaxUploadBytes: 200})

	rec := httptest.NewRecorder()
	h.ProcessDocument(rec, multipartRequest(t, "/api/process-document", allParts()...))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decode[v1handler.DetailResponse](t, rec).Detail, "upload exceeds 200 bytes")
}
