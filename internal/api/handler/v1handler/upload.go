package v1handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/internal/filler"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

// readUploads collects the PDFs of a multipart request. A part belongs to a
// source when its form field is the source's field (e.g. "tbmt_pdf") or its
// file name is the source's file name (e.g. "TBMT.pdf"). Other parts are
// ignored; the first part for a source wins.
func (h Handler) readUploads(w http.ResponseWriter, r *http.Request) (filler.Uploads, error) {
	if h.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "expected a multipart/form-data body")
	}

	uploads := filler.Uploads{}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, uploadError(err)
		}

		kind, ok := partSource(part.FormName(), part.FileName())
		if !ok || uploads[kind] != nil {
			logger.Debug(r.Context(), "ignoring multipart part",
				zap.String("field", part.FormName()), zap.String("file", part.FileName()))
			_ = part.Close()

			continue
		}

		b, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, uploadError(err)
		}
		uploads[kind] = b
	}

	return uploads, nil
}

func partSource(field, fileName string) (domain.SourceKind, bool) {
	if k, ok := domain.SourceKindByFormField(field); ok {
		return k, true
	}
	if fileName == "" {
		return "", false
	}

	// browsers may send a path
	return domain.SourceKindByFileName(path.Base(strings.ReplaceAll(fileName, `\`, "/")))
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return serrors.With(serrors.ErrBadRequest, "upload exceeds %d bytes", tooLarge.Limit)
	}

	return serrors.Wrap(serrors.ErrBadRequest, fmt.Errorf("could not read upload: %w", err), "invalid upload")
}
