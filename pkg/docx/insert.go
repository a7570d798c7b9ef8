package docx

import (
	"math"
	"strings"

	"github.com/beevik/etree"
)

// InsertOption adjusts a block copied by ReplaceParagraph before it is
// inserted.
type InsertOption func(block *etree.Element)

// WithParagraphSpacing sets the spacing of inserted paragraphs (values in
// twentieths of a point, line in 240ths of a line), replacing any spacing the
// paragraph had.
func WithParagraphSpacing(before, after, line int) InsertOption {
	return func(block *etree.Element) {
		if block.FullTag() != tagP {
			return
		}

		spacing := setProperty(paragraphProperties(block), "w:spacing", pPrOrder)
		spacing.CreateAttr("w:before", itoa(before))
		spacing.CreateAttr("w:after", itoa(after))
		spacing.CreateAttr("w:line", itoa(line))
		spacing.CreateAttr("w:lineRule", "auto")
	}
}

// WithMinRowHeight sets an "at least" height in twips on every row of
// inserted tables, replacing any height the row had.
func WithMinRowHeight(height int) InsertOption {
	return func(block *etree.Element) {
		if block.FullTag() != tagTbl {
			return
		}

		var rows []*etree.Element
		collectAll(block, tagTr, &rows)
		for _, tr := range rows {
			h := setProperty(rowProperties(tr), "w:trHeight", trPrOrder)
			h.CreateAttr("w:val", itoa(height))
			h.CreateAttr("w:hRule", "atLeast")
		}
	}
}

// WithDefaultLineSpacing sets a proportional line spacing (e.g. 1.3) on
// inserted paragraphs that do not specify one.
func WithDefaultLineSpacing(multiple float64) InsertOption {
	return func(block *etree.Element) {
		if block.FullTag() != tagP {
			return
		}

		pPr := paragraphProperties(block)
		spacing := pPr.SelectElement("w:spacing")
		if spacing == nil {
			spacing = setProperty(pPr, "w:spacing", pPrOrder)
		}
		if spacing.SelectAttr("w:line") == nil {
			spacing.CreateAttr("w:line", itoa(lineTwips(multiple)))
			spacing.CreateAttr("w:lineRule", "auto")
		}
	}
}

// WithDefaultFont gives runs of inserted paragraphs that carry no explicit
// font or size the given ones.
func WithDefaultFont(font Font) InsertOption {
	return func(block *etree.Element) {
		if block.FullTag() != tagP {
			return
		}

		var runs []*etree.Element
		collectAll(block, tagR, &runs)
		for _, r := range runs {
			rPr := runProperties(r)
			if rPr.SelectElement("w:rFonts") == nil && font.Name != "" {
				setFontName(rPr, font.Name)
			}
			if rPr.SelectElement("w:sz") == nil && font.Size > 0 {
				setFontSize(rPr, font.Size)
			}
		}
	}
}

// collectAll appends every descendant of el with the given tag, including
// nested ones.
func collectAll(el *etree.Element, tag string, out *[]*etree.Element) {
	for _, c := range el.ChildElements() {
		if c.FullTag() == tag {
			*out = append(*out, c)
		}
		collectAll(c, tag, out)
	}
}

// FindParagraph returns the first paragraph, body level or inside a table
// cell, whose text contains token.
func (d *Document) FindParagraph(token string) *etree.Element {
	for _, p := range d.Paragraphs() {
		if strings.Contains(ParagraphText(p), token) {
			return p
		}
	}

	return nil
}

// ReplaceParagraph removes the first paragraph containing token and inserts
// copies of blocks at its position, in order. It reports whether a paragraph
// was found.
func (d *Document) ReplaceParagraph(token string, blocks []*etree.Element, opts ...InsertOption) bool {
	target := d.FindParagraph(token)
	if target == nil {
		return false
	}

	parent := target.Parent()
	idx := target.Index()
	parent.RemoveChildAt(idx)

	var last *etree.Element
	for _, b := range blocks {
		c := b.Copy()
		for _, opt := range opts {
			opt(c)
		}
		parent.InsertChildAt(idx, c)
		idx = c.Index() + 1
		last = c
	}

	// a table cell must end with a paragraph
	if parent.FullTag() == tagTc && (last == nil || last.FullTag() != tagP) {
		parent.InsertChildAt(idx, etree.NewElement(tagP))
	}

	return true
}

func lineTwips(multiple float64) int { return int(math.Round(multiple * 240)) }
