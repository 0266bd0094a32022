// Package markup converts a DOCX package into a semantic HTML fragment for
// print rendering.
//
// The conversion is lossy by intent: headings, paragraphs, emphasis, lists
// and tables survive; images, drawings, headers and footers do not.
package markup

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/alnah/go-docfill/internal/docxpkg"
)

// ErrConversion is returned when the package cannot be read as a document.
var ErrConversion = errors.New("cannot convert package to markup")

//go:embed print.css
var printCSS string

// policy is safe for concurrent use once built.
var policy = bluemonday.UGCPolicy()

// Convert returns the sanitized HTML fragment for a DOCX package.
func Convert(data []byte) (string, error) {
	pkg, err := docxpkg.Open(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return convert(pkg)
}

// ConvertFile is Convert for a package on disk.
func ConvertFile(path string) (string, error) {
	pkg, err := docxpkg.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return convert(pkg)
}

func convert(pkg *docxpkg.Package) (string, error) {
	doc, err := pkg.ParsePart(docxpkg.DocumentPart)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}
	body := doc.FindElement("//body")
	if body == nil {
		return "", fmt.Errorf("%w: document has no body", ErrConversion)
	}

	c := &converter{
		headings: loadHeadingStyles(pkg),
		lists:    loadNumbering(pkg),
	}

	var buf bytes.Buffer
	for _, n := range c.blocks(body) {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("%w: rendering html: %v", ErrConversion, err)
		}
		buf.WriteByte('\n')
	}
	return strings.TrimSpace(policy.Sanitize(buf.String())), nil
}

// Document wraps a fragment in the fixed print shell.
func Document(fragment string) string {
	var b strings.Builder
	b.WriteString("<!doctype html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\"/>\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width,initial-scale=1\"/>\n")
	b.WriteString("<style>\n")
	b.WriteString(printCSS)
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString(fragment)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
