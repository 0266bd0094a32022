package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	docfill "github.com/alnah/go-docfill"
	"github.com/alnah/go-docfill/internal/config"
	"github.com/alnah/go-docfill/internal/hints"
	"github.com/alnah/go-docfill/internal/templates"
)

// hintError appends an actionable hint to an error message.
type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string { return e.err.Error() + e.hint }
func (e *hintError) Unwrap() error { return e.err }

// withHint attaches the hint matching err. templatePath is used to list
// sibling templates when the file is missing.
func withHint(err error, templatePath string) error {
	var hint string
	switch {
	case errors.Is(err, docfill.ErrRenderEngineUnavailable):
		hint = hints.ForBrowserLaunch()
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	case errors.Is(err, docfill.ErrUnsupportedFormat):
		hint = hints.ForUnsupportedFormat()
	case errors.Is(err, docfill.ErrTemplateNotFound):
		hint = hints.ForTemplateNotFound(siblingTemplates(templatePath))
	case errors.Is(err, docfill.ErrTemplateRender) && hasFields(err):
		hint = hints.ForMalformedTag()
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(config.SearchPaths(defaultConfigName))
	}
	if hint == "" {
		return err
	}
	return &hintError{err: err, hint: hint}
}

func hasFields(err error) bool {
	var e *docfill.Error
	return errors.As(err, &e) && len(e.Fields) > 0
}

func siblingTemplates(path string) []string {
	store, err := templates.NewStore(filepath.Dir(path))
	if err != nil {
		return nil
	}
	names, err := store.List()
	if err != nil {
		return nil
	}
	return names
}

// printError writes the error and, for malformed templates, one line per
// bad field.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
	var e *docfill.Error
	if !errors.As(err, &e) {
		return
	}
	for _, f := range e.Fields {
		fmt.Fprintf(w, "  %s paragraph %d offset %d: %s %q\n", f.Part, f.Paragraph+1, f.Offset, f.Reason, f.Tag)
	}
}
