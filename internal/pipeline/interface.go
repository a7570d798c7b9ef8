// Package pipeline fills a template from the text of the tender PDFs.
//
// Extraction and model calls of one run happen concurrently; the results are
// applied to the template strictly in placeholder order.
package pipeline

import (
	"context"

	"github.com/sonnq3591/plg-hsdt/pkg/domain"
)

// Job describes one pipeline run.
type Job struct {
	// Template is the name of the template to fill, e.g. domain.MainTemplate.
	Template string
	// Inputs maps each source document to a local PDF path.
	Inputs map[domain.SourceKind]string
	// Artifacts receives the intermediate files of every step when non-nil.
	Artifacts ArtifactSink
}

// Output is a filled document and a summary of what went into it.
type Output struct {
	Document []byte
	Result   domain.FillResult
}

// ArtifactSink stores intermediate files of a run, grouped by placeholder.
type ArtifactSink interface {
	PutArtifact(ctx context.Context, placeholder domain.Placeholder, name string, data []byte) error
}

// Runner runs the pipeline. Failures carry serrors kinds: UNPROCESSABLE when
// the inputs cannot produce a document, BAD_REQUEST for unknown templates or
// missing inputs, and the kinds of the model client otherwise.
//
//go:generate mockgen -package mockpipeline -source=interface.go -destination=mock/mockpipeline.go *
type Runner interface {
	Run(ctx context.Context, job Job) (*Output, error)
}
