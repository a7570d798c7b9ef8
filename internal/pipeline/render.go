package pipeline

import (
	"context"
	"encoding/csv"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/pkg/docx"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

// BodyFont is used for every generated fragment.
var BodyFont = docx.Font{Name: "Times New Roman", Size: 14} //nolint: gochecknoglobals

const (
	scopeColumns   = 6
	tableWidth     = 7.0
	minColumnWidth = 0.6
	maxColumnWidth = 2.0
	shortCellRunes = 10
)

// TenderName cleans the model's answer for the tender name.
func TenderName(answer string) string {
	v := strings.TrimSpace(answer)
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		v = v[1 : len(v)-1]
	}
	if v == "" {
		return domain.NotFoundMarker
	}

	return v
}

// ParseCSV reads a CSV answer line by line. Code fence lines are dropped and
// lines that cannot be parsed are skipped. Cells are trimmed.
func ParseCSV(ctx context.Context, answer string) ([][]string, error) {
	var rows [][]string
	for i, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}

		r := csv.NewReader(strings.NewReader(line))
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		rec, err := r.Read()
		if err != nil {
			logger.Warn(ctx, "skipping unparseable csv line", zap.Int("line", i+1), zap.Error(err))

			continue
		}
		for j := range rec {
			rec[j] = strings.TrimSpace(rec[j])
		}
		rows = append(rows, rec)
	}

	if len(rows) == 0 {
		return nil, serrors.With(serrors.ErrUnprocessable, "no table rows in model answer")
	}

	return rows, nil
}

// ColumnWidths returns twips widths proportional to the longest cell of each
// column, for a table 7in wide, each clamped to [0.6in, 2in]. Columns are as
// many as the cells of the first row.
func ColumnWidths(rows [][]string) []int {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}

	cols := len(rows[0])
	longest := make([]int, cols)
	total := 0
	for _, row := range rows {
		for j := 0; j < cols && j < len(row); j++ {
			longest[j] = max(longest[j], utf8.RuneCountInString(row[j]))
		}
	}
	for _, l := range longest {
		total += l
	}

	widths := make([]int, cols)
	for j, l := range longest {
		w := tableWidth / float64(cols)
		if total > 0 {
			w = float64(l) / float64(total) * tableWidth
		}
		widths[j] = docx.Inches(min(max(w, minColumnWidth), maxColumnWidth))
	}

	return widths
}

// ScopeTable renders the supply scope rows as a standalone document holding
// one table. Rows are cut or padded to the width of the header row.
func ScopeTable(ctx context.Context, rows [][]string) *docx.Document {
	cols := len(rows[0])
	if cols != scopeColumns {
		logger.Warn(ctx, "unexpected supply scope header",
			zap.Int("columns", cols), zap.Int("expected", scopeColumns))
	}

	normalized := make([][]string, len(rows))
	for i, row := range rows {
		normalized[i] = make([]string, cols)
		copy(normalized[i], row)
	}

	doc := docx.New(BodyFont)
	doc.AddTable(normalized, docx.TableFormat{
		ColumnWidths:   ColumnWidths(normalized),
		Borders:        true,
		Centered:       true,
		VerticalCenter: true,
		Cell:           scopeCell,
	})

	return doc
}

func scopeCell(row, col int, text string) docx.CellFormat {
	switch {
	case row == 0:
		return docx.CellFormat{Alignment: docx.AlignCenter, Bold: true}
	case col == 0 || utf8.RuneCountInString(text) < shortCellRunes:
		return docx.CellFormat{Alignment: docx.AlignCenter}
	default:
		return docx.CellFormat{Alignment: docx.AlignLeft}
	}
}

var boldLine = regexp.MustCompile(`^\*\*(.+)\*\*$`) //nolint: gochecknoglobals

// SectionFormat is applied to every paragraph of a markdown section.
var SectionFormat = docx.ParagraphFormat{ //nolint: gochecknoglobals
	Alignment:       docx.AlignJustify,
	FirstLineIndent: docx.Inches(0.5),
	SpaceAfter:      docx.Points(6),
}

// MarkdownDocument turns the model's markdown into paragraphs: a line wrapped
// in ** becomes a bold paragraph, any other non-empty line (bullets included)
// a plain one.
func MarkdownDocument(md string) (*docx.Document, int, error) {
	doc := docx.New(BodyFont)
	n := 0
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		run := docx.Run{Text: line}
		if m := boldLine.FindStringSubmatch(line); m != nil {
			run = docx.Run{Text: m[1], Bold: true}
		}
		doc.AddParagraph(SectionFormat, run)
		n++
	}

	if n == 0 {
		return nil, 0, serrors.With(serrors.ErrUnprocessable, "model returned no content")
	}

	return doc, n, nil
}
