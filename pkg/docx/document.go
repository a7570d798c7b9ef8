package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path"
	"strings"

	"github.com/beevik/etree"
	"github.com/go-faster/errors"
)

const (
	contentTypesPart = "[Content_Types].xml"
	packageRelsPart  = "_rels/.rels"
	defaultMainPart  = "word/document.xml"

	officeDocumentRel = "/officeDocument"
)

// ErrNoBody is returned when the main part has no w:body element.
var ErrNoBody = errors.New("document has no body")

type part struct {
	name string
	data []byte
}

// Document is an opened .docx package.
type Document struct {
	parts    []part
	mainPart string
	xml      *etree.Document
	body     *etree.Element

	// font applies to runs created by AddParagraph and AddTable.
	font Font
}

// Open parses a .docx package from its raw bytes.
func Open(b []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, errors.Wrap(err, "open zip")
	}

	d := &Document{parts: make([]part, 0, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", f.Name)
		}
		d.parts = append(d.parts, part{name: f.Name, data: data})
	}

	d.mainPart = d.findMainPart()
	raw, ok := d.part(d.mainPart)
	if !ok {
		return nil, errors.Errorf("main part %q not found", d.mainPart)
	}

	d.xml = etree.NewDocument()
	if err := d.xml.ReadFromBytes(raw); err != nil {
		return nil, errors.Wrap(err, "parse main part")
	}
	if d.body = d.xml.FindElement("./w:document/w:body"); d.body == nil {
		return nil, ErrNoBody
	}

	return d, nil
}

// OpenFile reads and parses the .docx at name.
func OpenFile(name string) (*Document, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return Open(b)
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rc.Close()
	}()

	return io.ReadAll(rc)
}

// findMainPart resolves the officeDocument relationship of the package,
// falling back to the conventional location.
func (d *Document) findMainPart() string {
	raw, ok := d.part(packageRelsPart)
	if !ok {
		return defaultMainPart
	}

	rels := etree.NewDocument()
	if err := rels.ReadFromBytes(raw); err != nil {
		return defaultMainPart
	}
	for _, rel := range rels.FindElements("./Relationships/Relationship") {
		if strings.HasSuffix(rel.SelectAttrValue("Type", ""), officeDocumentRel) {
			return strings.TrimPrefix(path.Clean(rel.SelectAttrValue("Target", "")), "/")
		}
	}

	return defaultMainPart
}

func (d *Document) part(name string) ([]byte, bool) {
	for _, p := range d.parts {
		if p.name == name {
			return p.data, true
		}
	}

	return nil, false
}

// Body returns the w:body element of the main part.
func (d *Document) Body() *etree.Element { return d.body }

// Write serialises the package to w. Parts other than the main part are
// written back unchanged and in their original order.
func (d *Document) Write(w io.Writer) error {
	main, err := d.xml.WriteToBytes()
	if err != nil {
		return errors.Wrap(err, "serialise main part")
	}

	zw := zip.NewWriter(w)
	for _, p := range d.parts {
		data := p.data
		if p.name == d.mainPart {
			data = main
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return errors.Wrapf(err, "create %s", p.name)
		}
		if _, err := fw.Write(data); err != nil {
			return errors.Wrapf(err, "write %s", p.name)
		}
	}

	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "close zip")
	}

	return nil
}

// Bytes returns the serialised package.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Blocks returns the body-level tables and non-empty paragraphs in document
// order. The returned elements belong to d; copy them before inserting them
// into another document.
func (d *Document) Blocks() []*etree.Element {
	var out []*etree.Element
	for _, el := range d.body.ChildElements() {
		switch el.FullTag() {
		case tagP:
			if strings.TrimSpace(ParagraphText(el)) != "" {
				out = append(out, el)
			}
		case tagTbl:
			out = append(out, el)
		}
	}

	return out
}

// Paragraphs returns every paragraph of the body, including those nested in
// table cells, in document order.
func (d *Document) Paragraphs() []*etree.Element {
	var out []*etree.Element
	collect(d.body, tagP, &out)

	return out
}

// collect appends descendants of el with the given full tag in document
// order without descending into matches.
func collect(el *etree.Element, tag string, out *[]*etree.Element) {
	for _, c := range el.ChildElements() {
		if c.FullTag() == tag {
			*out = append(*out, c)

			continue
		}
		collect(c, tag, out)
	}
}
