package docfill

import (
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// WithEngine shares an existing engine instead of creating one.
func WithEngine(e *Engine) Option {
	return func(p *Pipeline) {
		p.renderer = e
	}
}

// WithBrowserBin sets an explicit Chrome executable.
// A path that does not exist is ignored.
func WithBrowserBin(path string) Option {
	return func(p *Pipeline) {
		p.engineCfg.BrowserBin = path
	}
}

// WithBrowserCache sets the directory scanned for Chrome builds.
func WithBrowserCache(dir string) Option {
	return func(p *Pipeline) {
		p.engineCfg.CacheDir = dir
	}
}

// WithTimeout bounds each PDF conversion when the caller's context has no
// deadline.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.engineCfg.Timeout = d
		}
	}
}

// withRenderer replaces the engine; tests use it to observe conversions.
func withRenderer(r htmlRenderer) Option {
	return func(p *Pipeline) {
		p.renderer = r
	}
}
