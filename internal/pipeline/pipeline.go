package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sonnq3591/plg-hsdt/pkg/docx"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/llm"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/metrics"
	"github.com/sonnq3591/plg-hsdt/pkg/pdftext"
	"github.com/sonnq3591/plg-hsdt/pkg/prompt"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

const tracerName = "github.com/sonnq3591/plg-hsdt/internal/pipeline"

// Options configure a Pipeline.
type Options struct {
	// TemplatesDir holds the templates and the premade step documents.
	TemplatesDir string
	// Concurrency bounds the extractions and model calls running at once
	// within one run.
	Concurrency int
	// StepsFallback extracts the procedure section from the document when the
	// step count is neither 21 nor 23, instead of failing.
	StepsFallback bool
}

// RunError is returned by Run once the template is loaded. Result describes
// the placeholders processed until the failure.
type RunError struct {
	Result domain.FillResult
	Err    error
}

func (e *RunError) Error() string { return e.Err.Error() }
func (e *RunError) Unwrap() error { return e.Err }

// Pipeline implements Runner.
type Pipeline struct {
	llm       llm.Client
	extractor pdftext.Extractor
	prompts   *prompt.Catalogue
	options   Options
	metrics   *metrics.Instruments
	tracer    trace.Tracer
}

var _ Runner = (*Pipeline)(nil)

// New creates a Pipeline.
func New(client llm.Client, extractor pdftext.Extractor, prompts *prompt.Catalogue, options Options) *Pipeline {
	return &Pipeline{
		llm:       client,
		extractor: extractor,
		prompts:   prompts,
		options:   options,
		metrics:   metrics.Default(),
		tracer:    otel.Tracer(tracerName),
	}
}

// step fills one placeholder from the text of one source.
type step struct {
	placeholder domain.Placeholder
	source      domain.SourceKind
	mode        pdftext.Mode
	prepare     func(ctx context.Context, text string) (*fragment, error)
}

func (p *Pipeline) steps() []step {
	return []step{
		{domain.PlaceholderTenderName, domain.SourceTBMT, pdftext.Plain, p.tenderName},
		{domain.PlaceholderSupplyScope, domain.SourceBMMT, pdftext.Plain, p.supplyScope},
		{domain.PlaceholderLegalBasis, domain.SourceChuongV, pdftext.Plain, p.section(prompt.LegalBasis)},
		{domain.PlaceholderWorkPurpose, domain.SourceChuongV, pdftext.Plain, p.section(prompt.WorkPurpose)},
		{domain.PlaceholderProcedureSteps, domain.SourceChuongV, pdftext.Paged, p.procedureSteps},
	}
}

// Run fills job.Template from job.Inputs.
func (p *Pipeline) Run(ctx context.Context, job Job) (out *Output, err error) {
	if job.Template != domain.MainTemplate {
		return nil, serrors.With(serrors.ErrBadRequest, "unknown template %q", job.Template)
	}

	attrs := metric.WithAttributes(attribute.String("template", job.Template))
	started := time.Now()
	p.metrics.FillsStarted.Add(ctx, 1, attrs)
	ctx, span := p.tracer.Start(ctx, "pipeline.Run", trace.WithAttributes(attribute.String("template", job.Template)))
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		p.metrics.FillsFinished.Add(ctx, 1, attrs, metric.WithAttributes(attribute.String("outcome", outcome)))
		p.metrics.FillDuration.Record(ctx, time.Since(started).Seconds(), attrs)
		span.End()
	}()

	steps := p.steps()
	for _, s := range steps {
		if job.Inputs[s.source] == "" {
			return nil, serrors.With(serrors.ErrBadRequest, "missing input %s", s.source.FileName())
		}
	}

	doc, err := docx.OpenFile(filepath.Join(p.options.TemplatesDir, domain.TemplateFileName(job.Template)))
	if err != nil {
		return nil, fmt.Errorf("could not open template: %w", err)
	}

	result := domain.FillResult{StartedAt: started}
	for _, s := range steps {
		if doc.FindParagraph(s.placeholder.Token()) == nil {
			return nil, &RunError{Result: result, Err: missingPlaceholder(s.placeholder)}
		}
	}

	fragments, failedAt, err := p.prepare(ctx, steps, newTextCache(p.extractor, job.Inputs))
	if err != nil {
		s := steps[failedAt]
		result.Placeholders = append(result.Placeholders, failed(s, err))

		return nil, &RunError{Result: result, Err: fmt.Errorf("could not fill %s: %w", s.placeholder, err)}
	}

	for i, s := range steps {
		f := fragments[i]
		outcome, err := f.apply(doc, s)
		if err != nil {
			result.Placeholders = append(result.Placeholders, failed(s, err))

			return nil, &RunError{Result: result, Err: err}
		}
		result.Placeholders = append(result.Placeholders, outcome)
		if f.tenderName != "" {
			result.TenderName = f.tenderName
		}
		if f.stepCount > 0 {
			result.StepCount = f.stepCount
		}

		if job.Artifacts != nil {
			if err := f.store(ctx, job.Artifacts, s.placeholder); err != nil {
				logger.Warn(ctx, "could not store artifacts",
					zap.String("placeholder", string(s.placeholder)), zap.Error(err))
			}
		}
	}

	b, err := doc.Bytes()
	if err != nil {
		return nil, &RunError{Result: result, Err: fmt.Errorf("could not write output: %w", err)}
	}

	result.OutputName = domain.OutputFileName(job.Template)
	result.OutputSize = int64(len(b))
	result.FinishedAt = time.Now()

	return &Output{Document: b, Result: result}, nil
}

// prepare runs every step concurrently. On failure it returns the index of
// the step that failed first; the remaining steps are cancelled.
func (p *Pipeline) prepare(ctx context.Context, steps []step, texts *textCache) ([]*fragment, int, error) {
	var (
		fragments = make([]*fragment, len(steps))
		failedAt  int
		failOnce  sync.Once
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.options.Concurrency, 1))
	for i, s := range steps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			sctx, span := p.tracer.Start(gctx, "pipeline.step", trace.WithAttributes(
				attribute.String("placeholder", string(s.placeholder)),
				attribute.String("source", string(s.source)),
			))
			defer span.End()

			text, err := texts.get(sctx, s.source, s.mode)
			if err == nil {
				fragments[i], err = s.prepare(sctx, text)
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				failOnce.Do(func() { failedAt = i })

				return err
			}
			fragments[i].input = text

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, failedAt, err
	}

	return fragments, -1, nil
}

func (p *Pipeline) complete(ctx context.Context, name, document string) (string, error) {
	pr, err := p.prompts.Get(name)
	if err != nil {
		return "", err
	}

	ctx, span := p.tracer.Start(ctx, "llm.Complete", trace.WithAttributes(attribute.String("prompt", name)))
	defer span.End()

	answer, err := p.llm.Complete(ctx, pr.Request(document))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return "", fmt.Errorf("could not complete %s: %w", name, err)
	}

	return strings.TrimSpace(answer), nil
}

func (p *Pipeline) tenderName(ctx context.Context, text string) (*fragment, error) {
	answer, err := p.complete(ctx, prompt.TenderName, text)
	if err != nil {
		return nil, err
	}

	name := TenderName(answer)

	return &fragment{inline: true, value: name, answer: answer, tenderName: name}, nil
}

func (p *Pipeline) supplyScope(ctx context.Context, text string) (*fragment, error) {
	answer, err := p.complete(ctx, prompt.SupplyScope, text)
	if err != nil {
		return nil, err
	}

	rows, err := ParseCSV(ctx, answer)
	if err != nil {
		return nil, err
	}

	return &fragment{
		doc:    ScopeTable(ctx, rows),
		answer: answer,
		detail: strconv.Itoa(len(rows)-1) + " rows",
	}, nil
}

func (p *Pipeline) section(name string) func(ctx context.Context, text string) (*fragment, error) {
	return func(ctx context.Context, text string) (*fragment, error) {
		answer, err := p.complete(ctx, name, text)
		if err != nil {
			return nil, err
		}

		doc, n, err := MarkdownDocument(answer)
		if err != nil {
			return nil, err
		}

		return &fragment{
			doc:    doc,
			answer: answer,
			detail: strconv.Itoa(n) + " paragraphs",
			opts: []docx.InsertOption{
				docx.WithDefaultLineSpacing(1.3),
				docx.WithDefaultFont(BodyFont),
			},
		}, nil
	}
}

func (p *Pipeline) procedureSteps(ctx context.Context, text string) (*fragment, error) {
	opts := []docx.InsertOption{
		docx.WithParagraphSpacing(StepSpacingBefore, StepSpacingAfter, StepLineSpacing),
		docx.WithMinRowHeight(StepRowHeight),
	}

	answer, err := p.complete(ctx, prompt.StepCount, text)
	if err != nil {
		return nil, err
	}

	if count, ok := ParseStepCount(answer); ok {
		doc, err := docx.OpenFile(filepath.Join(p.options.TemplatesDir, PremadeFileName(count)))
		if err != nil {
			return nil, fmt.Errorf("could not open premade steps: %w", err)
		}

		return &fragment{
			doc:       doc,
			opts:      opts,
			answer:    answer,
			stepCount: count,
			detail:    PremadeFileName(count),
		}, nil
	}

	if !p.options.StepsFallback {
		return nil, serrors.With(serrors.ErrUnprocessable, "could not determine step count, model answered %q", answer)
	}

	logger.Info(ctx, "step count not recognised, extracting procedure section", zap.String("answer", answer))
	section, err := p.complete(ctx, prompt.ProcedureSection, text)
	if err != nil {
		return nil, err
	}

	sec, err := ParseProcedureSection(ctx, section)
	if err != nil {
		return nil, err
	}

	return &fragment{
		doc:    ProcedureDocument(sec),
		opts:   opts,
		answer: answer + "\n\n" + section,
		detail: "extracted " + strconv.Itoa(max(len(sec.Rows)-1, 0)) + " steps",
	}, nil
}

func failed(s step, err error) domain.PlaceholderOutcome {
	return domain.PlaceholderOutcome{
		Placeholder: s.placeholder,
		Source:      s.source,
		Error:       err.Error(),
	}
}

func missingPlaceholder(ph domain.Placeholder) error {
	return serrors.With(serrors.ErrUnprocessable, "placeholder %s not found in template", ph.Token())
}

// textCache extracts each (source, mode) text at most once per run.
type textCache struct {
	extractor pdftext.Extractor
	inputs    map[domain.SourceKind]string

	mu      sync.Mutex
	entries map[textKey]*textEntry
}

type textKey struct {
	source domain.SourceKind
	mode   pdftext.Mode
}

type textEntry struct {
	once sync.Once
	text string
	err  error
}

func newTextCache(extractor pdftext.Extractor, inputs map[domain.SourceKind]string) *textCache {
	return &textCache{
		extractor: extractor,
		inputs:    inputs,
		entries:   make(map[textKey]*textEntry),
	}
}

func (c *textCache) get(ctx context.Context, source domain.SourceKind, mode pdftext.Mode) (string, error) {
	key := textKey{source: source, mode: mode}

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &textEntry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.text, e.err = c.extractor.Extract(ctx, c.inputs[source], mode)
		if e.err != nil {
			e.err = fmt.Errorf("could not extract %s: %w", source.FileName(), e.err)
		}
	})

	return e.text, e.err
}
