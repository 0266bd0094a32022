package docfill

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-docfill/internal/browser"
	"github.com/alnah/go-docfill/internal/fileutil"
)

// Engine defaults.
const (
	DefaultTimeout = 60 * time.Second
	settleDelay    = 50 * time.Millisecond
)

// htmlRenderer turns a full HTML document into PDF bytes.
type htmlRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// browserLauncher starts one browser for one conversion.
type browserLauncher interface {
	Launch(ctx context.Context, spec launchSpec) (browserSession, error)
}

// browserSession is a running browser. Close must kill the process tree
// and release its profile directory.
type browserSession interface {
	PrintToPDF(ctx context.Context, htmlPath string, settle time.Duration) ([]byte, error)
	Close() error
}

// launchSpec selects the launch arguments. A minimal spec uses only
// --no-sandbox and the launcher's own executable lookup.
type launchSpec struct {
	bin     string
	minimal bool
}

// Compile-time interface checks.
var (
	_ htmlRenderer    = (*Engine)(nil)
	_ browserLauncher = rodLauncher{}
	_ browserSession  = (*rodSession)(nil)
)

// EngineConfig holds the discovery inputs and limits of an Engine.
type EngineConfig struct {
	BrowserBin string        // explicit executable, used only if it exists
	CacheDir   string        // puppeteer-style cache; default ~/.cache/puppeteer/chrome
	Timeout    time.Duration // per conversion when ctx has no deadline; default 60s
	Logger     *zerolog.Logger
}

// BrowserChoice reports the executable an Engine launches.
type BrowserChoice struct {
	Bin     string // empty: the launcher looks it up or downloads it
	Source  string // "config", "cache" or "default"
	Version string // set for cache builds
}

// Engine renders HTML to PDF with a fresh headless Chrome per call.
// The executable is chosen once, in NewEngine. Engine is safe for
// concurrent use; each call owns its own browser process.
type Engine struct {
	choice   BrowserChoice
	timeout  time.Duration
	settle   time.Duration
	log      zerolog.Logger
	launcher browserLauncher
}

// NewEngine runs browser discovery and returns a ready engine.
func NewEngine(cfg EngineConfig) *Engine {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	found := browser.Locate(browser.Options{Bin: cfg.BrowserBin, CacheDir: cfg.CacheDir})
	if found.Ignored != "" {
		log.Warn().Str("bin", found.Ignored).Msg("configured browser not found, ignoring")
	}
	choice := BrowserChoice{Bin: found.Bin, Source: string(found.Source), Version: found.Version}
	log.Info().
		Str("bin", choice.Bin).
		Str("source", choice.Source).
		Str("version", choice.Version).
		Msg("render engine browser selected")

	return &Engine{
		choice:   choice,
		timeout:  timeout,
		settle:   settleDelay,
		log:      log,
		launcher: rodLauncher{},
	}
}

// Browser returns the discovery decision.
func (e *Engine) Browser() BrowserChoice {
	return e.choice
}

// RenderHTMLToPDF prints an HTML document to A4 PDF. The browser is torn
// down before returning, whatever the outcome.
func (e *Engine) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	path, cleanup, err := fileutil.WriteTempFile([]byte(html), "html")
	if err != nil {
		return nil, newError(ErrPDFGeneration, "writing html", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			e.log.Warn().Err(err).Str("path", path).Msg("removing temp html failed")
		}
	}()

	session, err := e.launch(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			e.log.Warn().Err(err).Msg("browser teardown failed")
		}
	}()

	pdf, err := session.PrintToPDF(ctx, path, e.settle)
	if err != nil {
		return nil, newError(ErrPDFGeneration, "", err)
	}
	if len(pdf) == 0 {
		return nil, newError(ErrEmptyRenderOutput, "", nil)
	}
	return pdf, nil
}

// launch tries the configured browser, then once more with minimal flags
// and default executable resolution.
func (e *Engine) launch(ctx context.Context) (browserSession, error) {
	session, err := e.launcher.Launch(ctx, launchSpec{bin: e.choice.Bin})
	if err == nil {
		return session, nil
	}
	e.log.Warn().Err(err).Str("bin", e.choice.Bin).Msg("browser launch failed, retrying with minimal flags")

	session, retryErr := e.launcher.Launch(ctx, launchSpec{minimal: true})
	if retryErr == nil {
		return session, nil
	}
	return nil, newError(ErrRenderEngineUnavailable, "launch and fallback both failed", errors.Join(err, retryErr))
}
