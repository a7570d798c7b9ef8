package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// textNodes returns the w:t elements belonging to paragraph p in document
// order. Text of paragraphs nested inside p (text boxes) is excluded.
func textNodes(p *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, c := range el.ChildElements() {
			switch c.FullTag() {
			case tagT:
				out = append(out, c)
			case tagP:
			default:
				walk(c)
			}
		}
	}
	walk(p)

	return out
}

// ParagraphText returns the concatenated run text of paragraph p.
func ParagraphText(p *etree.Element) string {
	var sb strings.Builder
	for _, t := range textNodes(p) {
		sb.WriteString(t.Text())
	}

	return sb.String()
}

func setText(t *etree.Element, s string) {
	t.SetText(s)
	if s != strings.TrimSpace(s) {
		t.CreateAttr("xml:space", "preserve")
	}
}

// ReplaceText replaces every occurrence of old with value in all paragraphs
// of the body, including table cells, and returns the number of
// replacements. A match may span several runs: the run holding the first
// character receives value and keeps its formatting, fully covered runs are
// emptied and the run holding the last character keeps what follows the
// match.
func (d *Document) ReplaceText(old, value string) int {
	if old == "" {
		return 0
	}

	n := 0
	for _, p := range d.Paragraphs() {
		n += replaceInParagraph(p, old, value)
	}

	return n
}

func replaceInParagraph(p *etree.Element, old, value string) int {
	nodes := textNodes(p)
	if len(nodes) == 0 {
		return 0
	}

	n := 0
	from := 0
	for {
		texts := make([]string, len(nodes))
		starts := make([]int, len(nodes))
		var sb strings.Builder
		for i, t := range nodes {
			texts[i] = t.Text()
			starts[i] = sb.Len()
			sb.WriteString(texts[i])
		}

		full := sb.String()
		if from > len(full) {
			return n
		}
		idx := strings.Index(full[from:], old)
		if idx < 0 {
			return n
		}
		idx += from
		end := idx + len(old)

		first, last := -1, -1
		for i := range nodes {
			if texts[i] == "" {
				continue
			}
			if first < 0 && idx < starts[i]+len(texts[i]) {
				first = i
			}
			if end <= starts[i]+len(texts[i]) {
				last = i

				break
			}
		}

		prefix := texts[first][:idx-starts[first]]
		if first == last {
			setText(nodes[first], prefix+value+texts[first][end-starts[first]:])
		} else {
			setText(nodes[first], prefix+value)
			for i := first + 1; i < last; i++ {
				setText(nodes[i], "")
			}
			setText(nodes[last], texts[last][end-starts[last]:])
		}

		n++
		from = idx + len(value)
	}
}
