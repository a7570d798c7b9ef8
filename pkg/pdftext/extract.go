package pdftext

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

// Options configures the Service.
type Options struct {
	// PDFToTextPath enables the poppler reader. Paged extraction prefers it
	// and plain extraction uses it when the native reader fails.
	PDFToTextPath string
}

// Service implements Extractor on top of one or two PageReaders.
type Service struct {
	native  PageReader
	poppler PageReader
}

// New builds a Service. The poppler reader is only set up when a binary path
// is configured.
func New(opts Options) *Service {
	s := &Service{native: Native{}}
	if opts.PDFToTextPath != "" {
		s.poppler = NewPoppler(opts.PDFToTextPath)
	}

	return s
}

// NewWithReaders builds a Service from explicit readers; poppler may be nil.
func NewWithReaders(native, poppler PageReader) *Service {
	return &Service{native: native, poppler: poppler}
}

// Extract implements Extractor.
func (s *Service) Extract(ctx context.Context, path string, mode Mode) (string, error) {
	readers := []PageReader{s.native}
	if s.poppler != nil {
		if mode == Paged {
			readers = []PageReader{s.poppler, s.native}
		} else {
			readers = append(readers, s.poppler)
		}
	}

	var lastErr error
	for i, r := range readers {
		pages, err := r.Pages(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if i < len(readers)-1 {
				logger.Warn(ctx, "pdf reader failed, trying next",
					zap.String("path", path), zap.Stringer("mode", mode), zap.Error(err))
			}
			lastErr = err

			continue
		}

		return Join(pages, mode)
	}

	return "", lastErr
}

// Join concatenates pages according to mode and NFC-normalises the result.
// A document without any text is unprocessable.
func Join(pages []string, mode Mode) (string, error) {
	var sb strings.Builder
	empty := true
	for i, p := range pages {
		if strings.TrimSpace(p) != "" {
			empty = false
		}
		if mode == Paged {
			fmt.Fprintf(&sb, "\n--- PAGE %d ---\n", i+1)
			sb.WriteString(p)

			continue
		}
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	if empty {
		return "", serrors.With(serrors.ErrUnprocessable, "pdf has no text layer")
	}

	return norm.NFC.String(sb.String()), nil
}

var _ Extractor = (*Service)(nil)
