package pdftext

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

// Native reads pages with the pure Go github.com/ledongthuc/pdf reader.
type Native struct{}

// Pages implements PageReader. A page without content yields an empty string
// so that page numbers stay aligned.
func (Native) Pages(ctx context.Context, path string) (pages []string, err error) {
	// the reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, serrors.With(serrors.ErrUnprocessable, "malformed pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnprocessable, err, "could not open pdf")
	}
	defer func() {
		_ = f.Close()
	}()

	n := r.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")

			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("could not read page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}

var _ PageReader = Native{}
