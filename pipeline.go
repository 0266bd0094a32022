package docfill

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/alnah/go-docfill/internal/docxpkg"
	"github.com/alnah/go-docfill/internal/placeholder"
)

// Pipeline lists and fills template placeholders and converts the result.
// Create with New. A Pipeline holds no per-request state and is safe for
// concurrent use.
type Pipeline struct {
	log       zerolog.Logger
	engineCfg EngineConfig
	renderer  htmlRenderer
}

// New returns a Pipeline. Browser discovery runs here, once, unless an
// engine is supplied with WithEngine.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.renderer == nil {
		cfg := p.engineCfg
		cfg.Logger = &p.log
		p.renderer = NewEngine(cfg)
	}
	return p
}

// Engine returns the pipeline's engine, or nil when a custom renderer is set.
func (p *Pipeline) Engine() *Engine {
	e, _ := p.renderer.(*Engine)
	return e
}

// ListTokens returns the distinct placeholder names of a template in
// first-seen order. .docx templates are read through their flattened text,
// so placeholders split across formatting runs are found whole. .pdf
// templates are scanned as raw bytes.
func (p *Pipeline) ListTokens(ctx context.Context, path string) (tokens []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ext, err := templateExt(path)
	if err != nil {
		return nil, err
	}
	data, err := readTemplate(path)
	if err != nil {
		return nil, err
	}

	if ext == extPDF {
		return placeholder.Extract(string(data)), nil
	}

	pkg, err := docxpkg.Open(data)
	if err != nil {
		return nil, packageError(err)
	}
	tokens, err = pkg.Tokens()
	if err != nil {
		return nil, packageError(err)
	}
	return tokens, nil
}

// Render fills the template at path with values and returns it in the
// target format. Missing values render empty; extra values are ignored.
// .pdf templates are returned unchanged, PDF being their native format.
func (p *Pipeline) Render(ctx context.Context, path string, values map[string]string, target Format) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if target != FormatNative && target != FormatPDF {
		return nil, newError(ErrUnsupportedFormat, fmt.Sprintf("output format %q", target), nil)
	}
	ext, err := templateExt(path)
	if err != nil {
		return nil, err
	}
	data, err := readTemplate(path)
	if err != nil {
		return nil, err
	}

	if ext == extPDF {
		return &Result{Data: data, Format: target, ext: extPDF}, nil
	}

	pkg, err := docxpkg.Open(data)
	if err != nil {
		return nil, packageError(err)
	}
	rendered, err := pkg.Render(values)
	if err != nil {
		return nil, packageError(err)
	}
	p.log.Debug().Str("template", path).Int("values", len(values)).Msg("template rendered")

	return p.convert(ctx, rendered, target)
}

func readTemplate(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-supplied template path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrTemplateNotFound, path, nil)
		}
		return nil, newError(ErrTemplateRender, "reading template", err)
	}
	return data, nil
}
