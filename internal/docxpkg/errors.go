package docxpkg

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for package operations.
var (
	ErrInvalidPackage = errors.New("invalid document package")
	ErrMissingPart    = errors.New("missing required part")
	ErrPartParse      = errors.New("failed to parse document part")
	ErrMalformedTag   = errors.New("malformed merge field")
)

// Tag problem reasons reported in FieldError.Reason.
const (
	ReasonUnclosed = "unclosed tag"
	ReasonUnopened = "unopened tag"
	ReasonNested   = "nested opening delimiter"
)

// FieldError locates one malformed merge field.
type FieldError struct {
	Part      string `json:"part"`      // zip entry name, e.g. "word/document.xml"
	Paragraph int    `json:"paragraph"` // 0-based paragraph index within the part
	Offset    int    `json:"offset"`    // byte offset within the paragraph text
	Tag       string `json:"tag"`       // offending text, delimiters included
	Reason    string `json:"reason"`
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: %q in %s paragraph %d at offset %d", f.Reason, f.Tag, f.Part, f.Paragraph, f.Offset)
}

// RenderError reports every malformed merge field found during Render.
// It unwraps to ErrMalformedTag.
type RenderError struct {
	Fields []FieldError
}

func (e *RenderError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%v: %s", ErrMalformedTag, e.Fields[0])
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%v: %d problems: %s", ErrMalformedTag, len(e.Fields), strings.Join(parts, "; "))
}

func (e *RenderError) Unwrap() error {
	return ErrMalformedTag
}
