// Package report renders a fill as a markdown summary.
package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"

	"github.com/sonnq3591/plg-hsdt/pkg/domain"
)

const detailWidth = 80

// Write renders f to w.
func Write(w io.Writer, f domain.Fill) error {
	md := markdown.NewMarkdown(w)

	md.H1("Fill report: " + f.Template)
	md.PlainText("")

	rows := [][]string{
		{"Fill", "`" + f.ID.String() + "`"},
		{"Status", statusText(f.Status)},
		{"Attempts", strconv.FormatUint(uint64(f.Attempts), 10)},
		{"Created", f.CreatedAt.UTC().Format(time.RFC3339)},
	}
	if d := f.Result.Duration(); d > 0 {
		rows = append(rows, []string{"Duration", d.Round(time.Millisecond).String()})
	}
	if f.Result.OutputName != "" {
		rows = append(rows, []string{"Output", f.Result.OutputName + " (" + strconv.FormatInt(f.Result.OutputSize, 10) + " bytes)"})
	}
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")

	writeDetected(md, f.Result)
	writePlaceholders(md, f.Result)

	if f.LastError != "" {
		md.H2("Last error")
		md.PlainText("")
		md.Warningf("%s", f.LastError)
		md.PlainText("")
	}

	return md.Build()
}

// String renders f and returns the markdown.
func String(f domain.Fill) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, f); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func statusText(s domain.FillStatus) string {
	switch s {
	case domain.FillStatusCompleted:
		return "✅ " + string(s)
	case domain.FillStatusFailed:
		return "❌ " + string(s)
	default:
		return "⏳ " + string(s)
	}
}

func writeDetected(md *markdown.Markdown, r domain.FillResult) {
	var items []string
	if r.TenderName != "" {
		items = append(items, "Tender name: "+r.TenderName)
	}
	if r.StepCount > 0 {
		items = append(items, "Procedure steps: "+strconv.Itoa(r.StepCount))
	}
	if len(items) == 0 {
		return
	}

	md.H2("Detected")
	md.PlainText("")
	md.BulletList(items...)
	md.PlainText("")
}

func writePlaceholders(md *markdown.Markdown, r domain.FillResult) {
	md.H2("Placeholders")
	md.PlainText("")

	if len(r.Placeholders) == 0 {
		md.PlainText("No placeholder has been processed yet.")
		md.PlainText("")

		return
	}

	rows := make([][]string, 0, len(r.Placeholders))
	for _, p := range r.Placeholders {
		outcome := "✅ filled"
		detail := p.Detail
		if !p.Filled {
			outcome = "❌ failed"
			detail = p.Error
		}
		if detail == "" {
			detail = "-"
		}
		rows = append(rows, []string{
			"`" + p.Placeholder.Token() + "`",
			string(p.Source),
			outcome,
			truncate(detail, detailWidth),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Placeholder", "Source", "Outcome", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}

	return s
}
