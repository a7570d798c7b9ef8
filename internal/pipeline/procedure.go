package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/pkg/docx"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

const (
	paragraphPrefix = "PARAGRAPH"
	tableStart      = "TABLE_START"
	tableEnd        = "TABLE_END"
)

// Insert formatting of the procedure steps.
const (
	StepSpacingBefore = 120
	StepSpacingAfter  = 120
	StepLineSpacing   = 360
	StepRowHeight     = 600
)

// ParseStepCount accepts the answers "21" and "23" only.
func ParseStepCount(answer string) (int, bool) {
	switch strings.TrimSpace(answer) {
	case "21":
		return 21, true
	case "23":
		return 23, true
	default:
		return 0, false
	}
}

// PremadeFileName is the document holding the premade steps for count.
func PremadeFileName(count int) string { return fmt.Sprintf("%d_BUOC.docx", count) }

// ProcedureSection is the procedure text extracted from a document when no
// premade steps apply.
type ProcedureSection struct {
	Paragraphs []string
	// Rows holds the step table, header first.
	Rows [][]string
}

// ParseProcedureSection reads "PARAGRAPHn:" lines and the CSV rows between
// TABLE_START and TABLE_END.
func ParseProcedureSection(ctx context.Context, answer string) (ProcedureSection, error) {
	var (
		sec     ProcedureSection
		inTable bool
	)
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == tableStart:
			inTable = true
		case line == tableEnd:
			inTable = false
		case strings.HasPrefix(line, paragraphPrefix):
			_, text, ok := strings.Cut(line, ":")
			if text = strings.TrimSpace(text); ok && text != "" {
				sec.Paragraphs = append(sec.Paragraphs, text)
			}
		case inTable && strings.Contains(line, ","):
			r := csv.NewReader(strings.NewReader(line))
			r.FieldsPerRecord = -1
			r.LazyQuotes = true
			rec, err := r.Read()
			if err != nil {
				logger.Warn(ctx, "skipping unparseable step row", zap.Error(err))

				continue
			}
			for i := range rec {
				rec[i] = strings.TrimSpace(rec[i])
			}
			sec.Rows = append(sec.Rows, rec)
		}
	}

	if len(sec.Paragraphs) == 0 && len(sec.Rows) == 0 {
		return sec, serrors.With(serrors.ErrUnprocessable, "procedure section not found")
	}

	return sec, nil
}

// IsSubStep reports whether a step number denotes a sub-step ("a)", "b.").
// Plain numbers are main steps.
func IsSubStep(number string) bool {
	number = strings.TrimSpace(number)
	if number == "" {
		return false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return true
		}
	}

	return false
}

// ProcedureDocument renders a ProcedureSection: its paragraphs, then a two
// column table with sub-steps in italics.
func ProcedureDocument(sec ProcedureSection) *docx.Document {
	doc := docx.New(BodyFont)
	for _, p := range sec.Paragraphs {
		doc.AddParagraph(docx.ParagraphFormat{
			Alignment:       docx.AlignJustify,
			FirstLineIndent: docx.Inches(0.5),
			SpaceAfter:      docx.Points(6),
			LineSpacing:     1.15,
		}, docx.Run{Text: p})
	}

	if len(sec.Rows) == 0 {
		return doc
	}

	rows := make([][]string, len(sec.Rows))
	for i, r := range sec.Rows {
		rows[i] = make([]string, 2)
		copy(rows[i], r)
	}

	doc.AddTable(rows, docx.TableFormat{
		ColumnWidths:   []int{docx.Inches(1.0), docx.Inches(5.5)},
		Borders:        true,
		Centered:       true,
		VerticalCenter: true,
		Cell: func(row, col int, _ string) docx.CellFormat {
			if row == 0 {
				return docx.CellFormat{Alignment: docx.AlignCenter, Bold: true}
			}

			f := docx.CellFormat{Alignment: docx.AlignLeft, Italic: IsSubStep(rows[row][0])}
			if col == 0 {
				f.Alignment = docx.AlignCenter
			}

			return f
		},
	})

	return doc
}
