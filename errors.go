package docfill

import (
	"errors"
	"strings"

	"github.com/alnah/go-docfill/internal/docxpkg"
	"github.com/alnah/go-docfill/internal/markup"
	"github.com/alnah/go-docfill/internal/templates"
)

// Sentinel errors for library operations. Every error returned by Pipeline
// and Engine matches exactly one of them with errors.Is.
var (
	ErrUnsupportedFormat       = errors.New("unsupported format")
	ErrTemplateNotFound        = errors.New("template not found")
	ErrTemplateRender          = errors.New("template render failed")
	ErrConversion              = errors.New("markup conversion failed")
	ErrRenderEngineUnavailable = errors.New("render engine unavailable")
	ErrPDFGeneration           = errors.New("PDF generation failed")
	ErrEmptyRenderOutput       = errors.New("render engine produced empty output")
	ErrInvalidValues           = errors.New("values must be a JSON object")
)

// FieldError locates one malformed merge field in a template.
type FieldError struct {
	Part      string `json:"part"`
	Paragraph int    `json:"paragraph"`
	Offset    int    `json:"offset"`
	Tag       string `json:"tag"`
	Reason    string `json:"reason"`
}

// Error is the structured error returned by the pipeline. Kind is one of the
// sentinels above; Fields is set for malformed templates.
type Error struct {
	Kind   error
	Msg    string
	Fields []FieldError
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// packageError maps docxpkg errors to ErrTemplateRender.
func packageError(err error) error {
	var renderErr *docxpkg.RenderError
	if errors.As(err, &renderErr) {
		fields := make([]FieldError, len(renderErr.Fields))
		for i, f := range renderErr.Fields {
			fields[i] = FieldError(f)
		}
		return &Error{Kind: ErrTemplateRender, Fields: fields, Err: err}
	}
	switch {
	case errors.Is(err, docxpkg.ErrInvalidPackage),
		errors.Is(err, docxpkg.ErrMissingPart),
		errors.Is(err, docxpkg.ErrPartParse):
		return newError(ErrTemplateRender, "cannot resolve document tree", err)
	default:
		return newError(ErrTemplateRender, "", err)
	}
}

// conversionError maps markup errors to ErrConversion.
func conversionError(err error) error {
	if errors.Is(err, markup.ErrConversion) {
		return newError(ErrConversion, "", err)
	}
	return newError(ErrConversion, "writing rendered package", err)
}

// StoreError maps template store errors to the public sentinels.
func StoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, templates.ErrTemplateNotFound):
		return newError(ErrTemplateNotFound, "", err)
	case errors.Is(err, templates.ErrInvalidName),
		errors.Is(err, templates.ErrPathTraversal):
		return newError(ErrUnsupportedFormat, "", err)
	default:
		return err
	}
}
