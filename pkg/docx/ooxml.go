package docx

import (
	"slices"
	"strconv"

	"github.com/beevik/etree"
)

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	tagP       = "w:p"
	tagR       = "w:r"
	tagT       = "w:t"
	tagPPr     = "w:pPr"
	tagRPr     = "w:rPr"
	tagTbl     = "w:tbl"
	tagTblPr   = "w:tblPr"
	tagTblGrid = "w:tblGrid"
	tagTr      = "w:tr"
	tagTrPr    = "w:trPr"
	tagTc      = "w:tc"
	tagTcPr    = "w:tcPr"
	tagSectPr  = "w:sectPr"
)

// Child order of the property elements used by this package, as required by
// the WordprocessingML schema. Elements not listed sort last.
var (
	pPrOrder = []string{ //nolint: gochecknoglobals
		"w:pStyle", "w:keepNext", "w:keepLines", "w:pageBreakBefore", "w:framePr", "w:widowControl",
		"w:numPr", "w:suppressLineNumbers", "w:pBdr", "w:shd", "w:tabs", "w:suppressAutoHyphens",
		"w:kinsoku", "w:wordWrap", "w:overflowPunct", "w:topLinePunct", "w:autoSpaceDE", "w:autoSpaceDN",
		"w:bidi", "w:adjustRightInd", "w:snapToGrid", "w:spacing", "w:ind", "w:contextualSpacing",
		"w:mirrorIndents", "w:suppressOverlap", "w:jc", "w:textDirection", "w:textAlignment",
		"w:textboxTightWrap", "w:outlineLvl", "w:divId", "w:cnfStyle", "w:rPr", "w:sectPr", "w:pPrChange",
	}
	rPrOrder = []string{ //nolint: gochecknoglobals
		"w:rStyle", "w:rFonts", "w:b", "w:bCs", "w:i", "w:iCs", "w:caps", "w:smallCaps", "w:strike",
		"w:dstrike", "w:outline", "w:shadow", "w:emboss", "w:imprint", "w:noProof", "w:snapToGrid",
		"w:vanish", "w:webHidden", "w:color", "w:spacing", "w:w", "w:kern", "w:position", "w:sz",
		"w:szCs", "w:highlight", "w:u", "w:effect", "w:bdr", "w:shd", "w:fitText", "w:vertAlign",
		"w:rtl", "w:cs", "w:em", "w:lang", "w:eastAsianLayout", "w:specVanish", "w:oMath",
	}
	trPrOrder = []string{ //nolint: gochecknoglobals
		"w:cnfStyle", "w:divId", "w:gridBefore", "w:gridAfter", "w:wBefore", "w:wAfter", "w:cantSplit",
		"w:trHeight", "w:tblHeader", "w:tblCellSpacing", "w:jc", "w:hidden", "w:ins", "w:del", "w:trPrChange",
	}
	tcPrOrder = []string{ //nolint: gochecknoglobals
		"w:cnfStyle", "w:tcW", "w:gridSpan", "w:hMerge", "w:vMerge", "w:tcBorders", "w:shd", "w:noWrap",
		"w:tcMar", "w:textDirection", "w:tcFitText", "w:vAlign", "w:hideMark",
	}
	tblPrOrder = []string{ //nolint: gochecknoglobals
		"w:tblStyle", "w:tblpPr", "w:tblOverlap", "w:bidiVisual", "w:tblStyleRowBandSize",
		"w:tblStyleColBandSize", "w:tblW", "w:jc", "w:tblCellSpacing", "w:tblInd", "w:tblBorders",
		"w:shd", "w:tblLayout", "w:tblCellMar", "w:tblLook",
	}
)

func orderIndex(order []string, tag string) int {
	if i := slices.Index(order, tag); i >= 0 {
		return i
	}

	return len(order)
}

// setProperty replaces the child of props with the given tag by a new empty
// element placed according to order, and returns it.
func setProperty(props *etree.Element, tag string, order []string) *etree.Element {
	if old := props.SelectElement(tag); old != nil {
		props.RemoveChild(old)
	}

	el := etree.NewElement(tag)
	want := orderIndex(order, tag)
	for _, c := range props.ChildElements() {
		if orderIndex(order, c.FullTag()) > want {
			props.InsertChildAt(c.Index(), el)

			return el
		}
	}
	props.AddChild(el)

	return el
}

// properties returns the property element (pPr, rPr, trPr, tcPr, tblPr) of
// el, creating it as the first child when missing. after lists sibling tags
// that must precede the property element.
func properties(el *etree.Element, tag string, after ...string) *etree.Element {
	if props := el.SelectElement(tag); props != nil {
		return props
	}

	props := etree.NewElement(tag)
	idx := 0
	for _, c := range el.ChildElements() {
		if slices.Contains(after, c.FullTag()) {
			idx = c.Index() + 1
		}
	}
	el.InsertChildAt(idx, props)

	return props
}

func paragraphProperties(p *etree.Element) *etree.Element { return properties(p, tagPPr) }
func runProperties(r *etree.Element) *etree.Element       { return properties(r, tagRPr) }
func rowProperties(tr *etree.Element) *etree.Element      { return properties(tr, tagTrPr, "w:tblPrEx") }
func cellProperties(tc *etree.Element) *etree.Element     { return properties(tc, tagTcPr) }

func setVal(el *etree.Element, val string) *etree.Element {
	el.CreateAttr("w:val", val)

	return el
}

func itoa(i int) string { return strconv.Itoa(i) }
