package api_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sonnq3591/plg-hsdt/internal/api"
	"github.com/sonnq3591/plg-hsdt/internal/api/handler/v1handler"
	"github.com/sonnq3591/plg-hsdt/internal/filler"
	mockfiller "github.com/sonnq3591/plg-hsdt/internal/filler/mock"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	os.Exit(m.Run())
}

func newServer(t *testing.T, publicKey string) (*mockfiller.MockFiller, http.Handler) {
	t.Helper()

	f := mockfiller.NewMockFiller(gomock.NewController(t))
	h, err := api.NewHandler(api.Deps{Deps: v1handler.Deps{Filler: f}}, api.Options{
		SecHandlerOptions: &v1handler.SecHandlerOptions{PublicKey: publicKey},
		HandlerOptions:    v1handler.Options{MaxUploadBytes: 1 << 20},
		RequestTimeout:    5 * time.Second,
		FillTimeout:       5 * time.Second,
		MetricsPath:       "/metrics",
	})
	require.NoError(t, err)

	return f, h
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) v1handler.ErrorResponse {
	t.Helper()

	var res v1handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))

	return res
}

func uploadRequest(t *testing.T, target string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, k := range domain.RequiredSources {
		w, err := mw.CreateFormFile(k.FormField(), k.FileName())
		require.NoError(t, err)
		_, err = io.WriteString(w, "%PDF-1.7")
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestHealthRoutes(t *testing.T) {
	_, h := newServer(t, "")

	for _, path := range []string{"/api/health", "/v1/health"} {
		rec := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Contains(t, rec.Body.String(), `"status":"healthy"`)
	}
}

func TestNotFoundRoute(t *testing.T) {
	_, h := newServer(t, "")

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", errorBody(t, rec).Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestSpecAndDocs(t *testing.T) {
	_, h := newServer(t, "")

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/specs/v1.yaml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/v1/fills/{id}/output")

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	require.Equal(t, "/v1/docs/", rec.Header().Get("Location"))
}

func TestCreateFill(t *testing.T) {
	f, h := newServer(t, "")

	id := domain.FillID(uuid.New())
	f.EXPECT().Enqueue(gomock.Any(), domain.AnonymousUser, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.UserID, uploads filler.Uploads) (*domain.Fill, error) {
			require.Len(t, uploads, len(domain.RequiredSources))

			return &domain.Fill{ID: id, Template: domain.MainTemplate, Status: domain.FillStatusPending}, nil
		},
	)

	rec := serve(h, uploadRequest(t, "/v1/fills"))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "/v1/fills/"+id.String(), rec.Header().Get("Location"))

	var got domain.Fill
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, id, got.ID)
	require.Equal(t, domain.FillStatusPending, got.Status)
}

func TestListFills(t *testing.T) {
	f, h := newServer(t, "")

	f.EXPECT().UserFills(gomock.Any(), domain.AnonymousUser, domain.FillStatusCompleted, "c1", uint(5)).
		Return([]domain.Fill{{ID: domain.FillID(uuid.New())}}, "c2", nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/fills?status=COMPLETED&cursor=c1&limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got v1handler.FillList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Items, 1)
	require.NotNil(t, got.NextCursor)
	require.Equal(t, "c2", *got.NextCursor)
}

func TestListFills_EmptyPage(t *testing.T) {
	f, h := newServer(t, "")

	f.EXPECT().UserFills(gomock.Any(), domain.AnonymousUser, domain.FillStatus(""), "", uint(v1handler.DefaultLimit)).
		Return(nil, "", nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/fills", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[],"nextCursor":null}`, rec.Body.String())
}

func TestListFills_BadLimit(t *testing.T) {
	_, h := newServer(t, "")

	for _, limit := range []string{"0", "101", "ten"} {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/fills?limit="+limit, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, limit)
	}
}

func TestGetFill(t *testing.T) {
	f, h := newServer(t, "")

	id := domain.FillID(uuid.New())
	f.EXPECT().Result(gomock.Any(), domain.AnonymousUser, id).
		Return(&domain.Fill{ID: id, Status: domain.FillStatusProcessing, Attempts: 1}, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/fills/"+id.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"PROCESSING"`)
}

func TestGetFill_InvalidID(t *testing.T) {
	_, h := newServer(t, "")

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/fills/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid fill id", errorBody(t, rec).Message)
}

func TestGetFill_NotFound(t *testing.T) {
	f, h := newServer(t, "")

	id := domain.FillID(uuid.New())
	f.EXPECT().Result(gomock.Any(), domain.AnonymousUser, id).Return(nil, serrors.KindOnly(serrors.ErrNotFound))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/fills/"+id.String(), nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFillOutput(t *testing.T) {
	f, h := newServer(t, "")

	id := domain.FillID(uuid.New())
	f.EXPECT().Output(gomock.Any(), domain.AnonymousUser, id).
		Return(io.NopCloser(strings.NewReader("PK docx")), "02_MUC_DO_HIEU_BIET_output.docx", nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/fills/"+id.String()+"/output", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, v1handler.DocxContentType, rec.Header().Get("Content-Type"))
	require.Equal(t, "attachment; filename=02_MUC_DO_HIEU_BIET_output.docx", rec.Header().Get("Content-Disposition"))
	require.Equal(t, "PK docx", rec.Body.String())
}

func TestGetFillOutput_NotReady(t *testing.T) {
	f, h := newServer(t, "")

	id := domain.FillID(uuid.New())
	f.EXPECT().Output(gomock.Any(), domain.AnonymousUser, id).
		Return(nil, "", serrors.With(serrors.ErrConflict, "fill is PENDING"))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/fills/"+id.String()+"/output", nil))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "fill is PENDING", errorBody(t, rec).Message)
}

func TestGetFillReport(t *testing.T) {
	f, h := newServer(t, "")

	id := domain.FillID(uuid.New())
	now := time.Now()
	f.EXPECT().Result(gomock.Any(), domain.AnonymousUser, id).Return(&domain.Fill{
		ID:       id,
		Template: domain.MainTemplate,
		Status:   domain.FillStatusCompleted,
		Result: domain.FillResult{
			TenderName: "Gói thầu số 1",
			StartedAt:  now.Add(-time.Minute),
			FinishedAt: now,
		},
	}, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/fills/"+id.String()+"/report", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "Gói thầu số 1")
}

func TestDeleteFill(t *testing.T) {
	f, h := newServer(t, "")

	id := domain.FillID(uuid.New())
	f.EXPECT().Delete(gomock.Any(), domain.AnonymousUser, id).Return(nil)

	rec := serve(h, httptest.NewRequest(http.MethodDelete, "/v1/fills/"+id.String(), nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestFillRoutesRequireToken(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pub := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	f, h := newServer(t, pub)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/fills", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, uploadRequest(t, "/api/process-document"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// health stays public
	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	uid := uuid.New()
	token, err := v1handler.IssueToken(priv, "", domain.UserID(uid), time.Hour, time.Now())
	require.NoError(t, err)

	f.EXPECT().UserFills(gomock.Any(), domain.UserID(uid), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, "", nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/fills", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
