package docfill

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output format.
type Format string

const (
	// FormatNative returns the template's own format: a rendered DOCX for
	// .docx templates, the unchanged file for .pdf templates.
	FormatNative Format = "native"
	// FormatPDF converts rendered DOCX packages to PDF.
	FormatPDF Format = "pdf"
)

// Content types of the produced files.
const (
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePDF  = "application/pdf"
)

// Template extensions.
const (
	extDOCX = "docx"
	extPDF  = "pdf"
)

// ParseFormat accepts "", "native" and "docx" as FormatNative and "pdf" as
// FormatPDF, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native", "docx":
		return FormatNative, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", newError(ErrUnsupportedFormat, fmt.Sprintf("output format %q", s), nil)
	}
}

// templateExt returns "docx" or "pdf" for a template path.
func templateExt(path string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case extDOCX, extPDF:
		return ext, nil
	default:
		return "", newError(ErrUnsupportedFormat, fmt.Sprintf("template %q", filepath.Base(path)), nil)
	}
}

// Result is a finished document. The caller owns Data.
type Result struct {
	Data   []byte
	Format Format
	// HTML is the print document sent to the browser; empty unless Format
	// is FormatPDF and conversion ran.
	HTML string

	ext string
}

// Extension returns the file extension without dot: "docx" or "pdf".
func (r *Result) Extension() string {
	if r.ext != "" {
		return r.ext
	}
	if r.Format == FormatPDF {
		return extPDF
	}
	return extDOCX
}

// ContentType returns the MIME type of Data.
func (r *Result) ContentType() string {
	if r.Extension() == extPDF {
		return ContentTypePDF
	}
	return ContentTypeDOCX
}
