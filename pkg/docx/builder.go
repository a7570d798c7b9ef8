package docx

import (
	"fmt"
	"math"

	"github.com/beevik/etree"
)

// Twips per inch and per point.
const (
	TwipsPerInch  = 1440
	TwipsPerPoint = 20
)

// Inches converts inches to twips.
func Inches(in float64) int { return int(math.Round(in * TwipsPerInch)) }

// Points converts points to twips.
func Points(pt float64) int { return int(math.Round(pt * TwipsPerPoint)) }

// Font is a typeface and size in points.
type Font struct {
	Name string
	Size float64
}

// Alignment is a paragraph justification value (w:jc).
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Run is a span of text with uniform formatting.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
}

// ParagraphFormat holds direct paragraph formatting. Zero values are not
// written.
type ParagraphFormat struct {
	Alignment Alignment
	// FirstLineIndent, SpaceBefore and SpaceAfter are in twips.
	FirstLineIndent int
	SpaceBefore     int
	SpaceAfter      int
	// LineSpacing is a multiple of single spacing, e.g. 1.3.
	LineSpacing float64
}

// CellFormat controls the paragraph and run formatting of one table cell.
type CellFormat struct {
	Alignment Alignment
	Bold      bool
	Italic    bool
}

// TableFormat describes a table built by AddTable.
type TableFormat struct {
	// ColumnWidths in twips. Missing widths leave the column on auto.
	ColumnWidths []int
	// Borders draws single-line grid borders around every cell.
	Borders bool
	// Centered centers the table horizontally on the page.
	Centered bool
	// VerticalCenter centers the text of every cell vertically.
	VerticalCenter bool
	// Cell returns the formatting of the cell at row, col. When nil the
	// first row is bold and centered and the others are left aligned.
	Cell func(row, col int, text string) CellFormat
}

const (
	blankMainPart = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:body>` +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1701" w:header="720" w:footer="720" w:gutter="0"/>` +
		`</w:sectPr></w:body></w:document>`

	blankContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ` +
		`ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`<Override PartName="/word/styles.xml" ` +
		`ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
		`</Types>`

	blankPackageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" ` +
		`Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" ` +
		`Target="word/document.xml"/></Relationships>`

	blankDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" ` +
		`Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" ` +
		`Target="styles.xml"/></Relationships>`

	blankStylesFormat = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="` + nsW + `"><w:docDefaults><w:rPrDefault><w:rPr>` +
		`<w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:eastAsia="%[1]s" w:cs="%[1]s"/>` +
		`<w:sz w:val="%[2]d"/><w:szCs w:val="%[2]d"/><w:lang w:val="vi-VN"/>` +
		`</w:rPr></w:rPrDefault><w:pPrDefault/></w:docDefaults>` +
		`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
		`</w:styles>`
)

// New returns an empty A4 document whose Normal style and generated runs
// use font.
func New(font Font) *Document {
	styles := fmt.Sprintf(blankStylesFormat, font.Name, halfPoints(font.Size))
	d := &Document{
		parts: []part{
			{name: contentTypesPart, data: []byte(blankContentTypes)},
			{name: packageRelsPart, data: []byte(blankPackageRels)},
			{name: defaultMainPart, data: []byte(blankMainPart)},
			{name: "word/_rels/document.xml.rels", data: []byte(blankDocumentRels)},
			{name: "word/styles.xml", data: []byte(styles)},
		},
		mainPart: defaultMainPart,
		xml:      etree.NewDocument(),
		font:     font,
	}
	if err := d.xml.ReadFromString(blankMainPart); err != nil {
		panic(err) // constant input
	}
	d.body = d.xml.FindElement("./w:document/w:body")

	return d
}

func halfPoints(pt float64) int { return int(math.Round(pt * 2)) }

// appendBlock adds el to the body, keeping the section properties last.
func (d *Document) appendBlock(el *etree.Element) {
	if sect := d.body.SelectElement(tagSectPr); sect != nil {
		d.body.InsertChildAt(sect.Index(), el)

		return
	}
	d.body.AddChild(el)
}

// AddParagraph appends a paragraph made of runs to the body.
func (d *Document) AddParagraph(format ParagraphFormat, runs ...Run) *etree.Element {
	p := d.newParagraph(format, runs...)
	d.appendBlock(p)

	return p
}

func (d *Document) newParagraph(format ParagraphFormat, runs ...Run) *etree.Element {
	p := etree.NewElement(tagP)
	applyParagraphFormat(p, format)
	for _, r := range runs {
		p.AddChild(d.newRun(r))
	}

	return p
}

func applyParagraphFormat(p *etree.Element, f ParagraphFormat) {
	if f == (ParagraphFormat{}) {
		return
	}

	pPr := paragraphProperties(p)
	if f.SpaceBefore > 0 || f.SpaceAfter > 0 || f.LineSpacing > 0 {
		spacing := setProperty(pPr, "w:spacing", pPrOrder)
		if f.SpaceBefore > 0 {
			spacing.CreateAttr("w:before", itoa(f.SpaceBefore))
		}
		if f.SpaceAfter > 0 {
			spacing.CreateAttr("w:after", itoa(f.SpaceAfter))
		}
		if f.LineSpacing > 0 {
			spacing.CreateAttr("w:line", itoa(lineTwips(f.LineSpacing)))
			spacing.CreateAttr("w:lineRule", "auto")
		}
	}
	if f.FirstLineIndent > 0 {
		setProperty(pPr, "w:ind", pPrOrder).CreateAttr("w:firstLine", itoa(f.FirstLineIndent))
	}
	if f.Alignment != "" {
		setVal(setProperty(pPr, "w:jc", pPrOrder), string(f.Alignment))
	}
}

func (d *Document) newRun(r Run) *etree.Element {
	run := etree.NewElement(tagR)
	rPr := runProperties(run)
	if d.font.Name != "" {
		setFontName(rPr, d.font.Name)
	}
	if r.Bold {
		setProperty(rPr, "w:b", rPrOrder)
		setProperty(rPr, "w:bCs", rPrOrder)
	}
	if r.Italic {
		setProperty(rPr, "w:i", rPrOrder)
		setProperty(rPr, "w:iCs", rPrOrder)
	}
	if d.font.Size > 0 {
		setFontSize(rPr, d.font.Size)
	}
	if len(rPr.ChildElements()) == 0 {
		run.RemoveChild(rPr)
	}

	setText(run.CreateElement(tagT), r.Text)

	return run
}

func setFontName(rPr *etree.Element, name string) {
	fonts := setProperty(rPr, "w:rFonts", rPrOrder)
	for _, attr := range []string{"w:ascii", "w:hAnsi", "w:eastAsia", "w:cs"} {
		fonts.CreateAttr(attr, name)
	}
}

func setFontSize(rPr *etree.Element, pt float64) {
	setVal(setProperty(rPr, "w:sz", rPrOrder), itoa(halfPoints(pt)))
	setVal(setProperty(rPr, "w:szCs", rPrOrder), itoa(halfPoints(pt)))
}

// AddTable appends a table with one row per entry of rows. Short rows are
// padded with empty cells up to the widest row.
func (d *Document) AddTable(rows [][]string, format TableFormat) *etree.Element {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}

	tbl := etree.NewElement(tagTbl)
	tblPr := tbl.CreateElement(tagTblPr)
	w := setProperty(tblPr, "w:tblW", tblPrOrder)
	w.CreateAttr("w:w", "0")
	w.CreateAttr("w:type", "auto")
	if format.Centered {
		setVal(setProperty(tblPr, "w:jc", tblPrOrder), string(AlignCenter))
	}
	if format.Borders {
		borders := setProperty(tblPr, "w:tblBorders", tblPrOrder)
		for _, side := range []string{"w:top", "w:left", "w:bottom", "w:right", "w:insideH", "w:insideV"} {
			b := borders.CreateElement(side)
			b.CreateAttr("w:val", "single")
			b.CreateAttr("w:sz", "4")
			b.CreateAttr("w:space", "0")
			b.CreateAttr("w:color", "auto")
		}
	}
	if len(format.ColumnWidths) > 0 {
		setProperty(tblPr, "w:tblLayout", tblPrOrder).CreateAttr("w:type", "fixed")
	}

	grid := tbl.CreateElement(tagTblGrid)
	for c := 0; c < cols; c++ {
		gc := grid.CreateElement("w:gridCol")
		if c < len(format.ColumnWidths) {
			gc.CreateAttr("w:w", itoa(format.ColumnWidths[c]))
		}
	}

	cellFormat := format.Cell
	if cellFormat == nil {
		cellFormat = defaultCellFormat
	}

	for i, r := range rows {
		tr := tbl.CreateElement(tagTr)
		for c := 0; c < cols; c++ {
			text := ""
			if c < len(r) {
				text = r[c]
			}

			tc := tr.CreateElement(tagTc)
			tcPr := cellProperties(tc)
			if c < len(format.ColumnWidths) {
				tcW := setProperty(tcPr, "w:tcW", tcPrOrder)
				tcW.CreateAttr("w:w", itoa(format.ColumnWidths[c]))
				tcW.CreateAttr("w:type", "dxa")
			}
			if format.VerticalCenter {
				setVal(setProperty(tcPr, "w:vAlign", tcPrOrder), "center")
			}

			cf := cellFormat(i, c, text)
			tc.AddChild(d.newParagraph(
				ParagraphFormat{Alignment: cf.Alignment},
				Run{Text: text, Bold: cf.Bold, Italic: cf.Italic},
			))
		}
	}

	d.appendBlock(tbl)

	return tbl
}

func defaultCellFormat(row, _ int, _ string) CellFormat {
	if row == 0 {
		return CellFormat{Alignment: AlignCenter, Bold: true}
	}

	return CellFormat{Alignment: AlignLeft}
}
