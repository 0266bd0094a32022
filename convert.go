package docfill

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/alnah/go-docfill/internal/fileutil"
	"github.com/alnah/go-docfill/internal/markup"
)

// artifactSuffix names the transient copy of a rendered package.
const artifactSuffix = ".rendered.docx"

// convert returns the rendered package as is for FormatNative. For
// FormatPDF it goes through markup and the engine; the temporary copy of
// the package is removed whatever the outcome.
func (p *Pipeline) convert(ctx context.Context, rendered []byte, target Format) (*Result, error) {
	if target == FormatNative {
		return &Result{Data: rendered, Format: FormatNative, ext: extDOCX}, nil
	}

	artifact := filepath.Join(os.TempDir(), fileutil.UniqueName(artifactSuffix))
	if err := os.WriteFile(artifact, rendered, 0o600); err != nil {
		return nil, conversionError(err)
	}
	defer func() {
		if err := fileutil.RemoveIfExists(artifact); err != nil {
			p.log.Warn().Err(err).Str("path", artifact).Msg("removing rendered artifact failed")
		}
	}()

	fragment, err := markup.ConvertFile(artifact)
	if err != nil {
		return nil, conversionError(err)
	}
	doc := markup.Document(fragment)

	pdf, err := p.renderer.RenderHTMLToPDF(ctx, doc)
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, newError(ErrPDFGeneration, "", err)
	}
	if len(pdf) == 0 {
		return nil, newError(ErrEmptyRenderOutput, "", nil)
	}
	return &Result{Data: pdf, Format: FormatPDF, HTML: doc, ext: extPDF}, nil
}
