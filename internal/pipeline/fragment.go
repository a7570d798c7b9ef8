package pipeline

import (
	"context"
	"fmt"

	"github.com/sonnq3591/plg-hsdt/pkg/docx"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
)

// Artifact names stored per placeholder.
const (
	ArtifactInput    = "input.txt"
	ArtifactAnswer   = "output.txt"
	ArtifactFragment = "fragment.docx"
)

// fragment is the prepared content of one placeholder.
type fragment struct {
	// inline fragments replace the token in place with value.
	inline bool
	value  string
	// doc holds the blocks replacing the placeholder paragraph otherwise.
	doc  *docx.Document
	opts []docx.InsertOption

	input      string
	answer     string
	detail     string
	tenderName string
	stepCount  int
}

func (f *fragment) apply(doc *docx.Document, s step) (domain.PlaceholderOutcome, error) {
	out := domain.PlaceholderOutcome{
		Placeholder: s.placeholder,
		Source:      s.source,
		Detail:      f.detail,
	}
	token := s.placeholder.Token()

	if f.inline {
		if doc.ReplaceText(token, f.value) == 0 {
			return out, missingPlaceholder(s.placeholder)
		}
		out.Filled = true
		out.Detail = f.value

		return out, nil
	}

	blocks := f.doc.Blocks()
	if !doc.ReplaceParagraph(token, blocks, f.opts...) {
		return out, missingPlaceholder(s.placeholder)
	}
	out.Filled = true
	out.Blocks = len(blocks)

	return out, nil
}

func (f *fragment) store(ctx context.Context, sink ArtifactSink, ph domain.Placeholder) error {
	if err := sink.PutArtifact(ctx, ph, ArtifactInput, []byte(f.input)); err != nil {
		return err
	}
	if err := sink.PutArtifact(ctx, ph, ArtifactAnswer, []byte(f.answer)); err != nil {
		return err
	}
	if f.doc == nil {
		return nil
	}

	b, err := f.doc.Bytes()
	if err != nil {
		return fmt.Errorf("could not write fragment: %w", err)
	}

	return sink.PutArtifact(ctx, ph, ArtifactFragment, b)
}
