// Package docxtest builds minimal DOCX packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// Styles declares Title and Heading1..Heading3 with their outline levels.
const Styles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles ` + wordNS + `>` +
	`<w:style w:type="paragraph" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:pPr><w:outlineLvl w:val="0"/></w:pPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:pPr><w:outlineLvl w:val="1"/></w:pPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Kop3"><w:name w:val="heading 3"/><w:pPr><w:outlineLvl w:val="2"/></w:pPr></w:style>` +
	`</w:styles>`

// Numbering defines numId 1 as a bullet list and numId 2 as a decimal list.
const Numbering = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering ` + wordNS + `>` +
	`<w:abstractNum w:abstractNumId="0">` +
	`<w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl>` +
	`<w:lvl w:ilvl="1"><w:numFmt w:val="bullet"/></w:lvl>` +
	`</w:abstractNum>` +
	`<w:abstractNum w:abstractNumId="1">` +
	`<w:lvl w:ilvl="0"><w:numFmt w:val="decimal"/></w:lvl>` +
	`<w:lvl w:ilvl="1"><w:numFmt w:val="lowerLetter"/></w:lvl>` +
	`</w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>` +
	`</w:numbering>`

// Fixed entry time so two builds of the same fixture are byte-identical.
var modTime = time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC)

// Builder assembles a package from body XML and extra parts.
type Builder struct {
	body  []string
	parts [][2]string
}

// New returns a builder with an empty body.
func New() *Builder {
	return &Builder{}
}

// Body appends raw body XML, typically produced by P and friends.
func (b *Builder) Body(xml ...string) *Builder {
	b.body = append(b.body, xml...)
	return b
}

// Paragraphs appends one plain paragraph per line of text.
func (b *Builder) Paragraphs(lines ...string) *Builder {
	for _, l := range lines {
		b.body = append(b.body, P(R(l)))
	}
	return b
}

// Part adds an arbitrary entry after the document part.
func (b *Builder) Part(name, content string) *Builder {
	b.parts = append(b.parts, [2]string{name, content})
	return b
}

// Header adds word/<name> as a header part holding the given body XML.
func (b *Builder) Header(name string, xml ...string) *Builder {
	return b.Part("word/"+name, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<w:hdr `+wordNS+`>`+strings.Join(xml, "")+`</w:hdr>`)
}

// Footer adds word/<name> as a footer part holding the given body XML.
func (b *Builder) Footer(name string, xml ...string) *Builder {
	return b.Part("word/"+name, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<w:ftr `+wordNS+`>`+strings.Join(xml, "")+`</w:ftr>`)
}

// WithStyles adds the Styles and Numbering parts.
func (b *Builder) WithStyles() *Builder {
	return b.Part("word/styles.xml", Styles).Part("word/numbering.xml", Numbering)
}

// DocumentXML returns the word/document.xml content.
func (b *Builder) DocumentXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document ` + wordNS + `><w:body>` + strings.Join(b.body, "") +
		`<w:sectPr/></w:body></w:document>`
}

// Bytes returns the zipped package.
func (b *Builder) Bytes() []byte {
	entries := [][2]string{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", rootRels},
		{"word/document.xml", b.DocumentXML()},
	}
	entries = append(entries, b.parts...)
	return Zip(entries...)
}

// WriteFile writes the package into dir and returns its path.
func (b *Builder) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b.Bytes(), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// Zip stores name/content pairs in order.
func Zip(entries ...[2]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e[0], Method: zip.Deflate, Modified: modTime})
		if err != nil {
			panic(fmt.Sprintf("docxtest: %v", err))
		}
		if _, err := w.Write([]byte(e[1])); err != nil {
			panic(fmt.Sprintf("docxtest: %v", err))
		}
	}
	if err := zw.Close(); err != nil {
		panic(fmt.Sprintf("docxtest: %v", err))
	}
	return buf.Bytes()
}

// P wraps runs in a paragraph.
func P(runs ...string) string {
	return "<w:p>" + strings.Join(runs, "") + "</w:p>"
}

// Styled wraps runs in a paragraph with the given style id.
func Styled(styleID string, runs ...string) string {
	return `<w:p><w:pPr><w:pStyle w:val="` + styleID + `"/></w:pPr>` + strings.Join(runs, "") + "</w:p>"
}

// Item wraps runs in a numbered paragraph.
func Item(numID, ilvl int, runs ...string) string {
	return fmt.Sprintf(`<w:p><w:pPr><w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr></w:pPr>%s</w:p>`,
		ilvl, numID, strings.Join(runs, ""))
}

// R is a plain run.
func R(text string) string {
	return "<w:r>" + T(text) + "</w:r>"
}

// B is a bold run.
func B(text string) string {
	return "<w:r><w:rPr><w:b/></w:rPr>" + T(text) + "</w:r>"
}

// I is an italic run.
func I(text string) string {
	return "<w:r><w:rPr><w:i/></w:rPr>" + T(text) + "</w:r>"
}

// T is a text element with preserved spacing.
func T(text string) string {
	return `<w:t xml:space="preserve">` + html.EscapeString(text) + "</w:t>"
}
