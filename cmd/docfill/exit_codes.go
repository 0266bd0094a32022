package main

import (
	"errors"
	"os"

	docfill "github.com/alnah/go-docfill"
	"github.com/alnah/go-docfill/internal/config"
)

// Exit codes for the docfill CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error, malformed template
	ExitUsage   = 2 // Invalid flags, config, or format
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, docfill.ErrRenderEngineUnavailable) ||
		errors.Is(err, docfill.ErrPDFGeneration) ||
		errors.Is(err, docfill.ErrEmptyRenderOutput) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, docfill.ErrTemplateNotFound) ||
		errors.Is(err, ErrReadValues) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, docfill.ErrUnsupportedFormat) ||
		errors.Is(err, docfill.ErrInvalidValues) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) {
		return ExitUsage
	}

	return ExitGeneral
}
