// Package pdftext extracts the text layer of PDF files. Pages are read by a
// PageReader (pure Go or the poppler pdftotext binary) and joined either as
// plain text or with page markers.
package pdftext

import (
	"context"
)

// Mode selects how extracted pages are joined.
type Mode int

const (
	// Plain joins pages with a single newline.
	Plain Mode = iota
	// Paged prefixes every page with a "--- PAGE n ---" marker line.
	Paged
)

func (m Mode) String() string {
	if m == Paged {
		return "paged"
	}

	return "plain"
}

// PageReader returns the text of every page of a PDF file, in order.
type PageReader interface {
	Pages(ctx context.Context, path string) ([]string, error)
}

// Extractor returns the normalised text of a PDF file.
//
//go:generate mockgen -package mockpdftext -source=interface.go -destination=mock/mockpdftext.go *
type Extractor interface {
	Extract(ctx context.Context, path string, mode Mode) (string, error)
}
