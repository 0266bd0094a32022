package docfill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-docfill/internal/process"
)

// A4 page with 20mm top/bottom and 18mm left/right margins, in inches.
const (
	paperWidthInches   = 8.27
	paperHeightInches  = 11.69
	marginTBInches     = 20 / 25.4
	marginLRInches     = 18 / 25.4
	closeBrowserBudget = 5 * time.Second
)

// rodLauncher starts Chrome through go-rod's launcher.
type rodLauncher struct{}

func newLauncher(spec launchSpec) *launcher.Launcher {
	if spec.minimal {
		return launcher.New().NoSandbox(true)
	}
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-setuid-sandbox").
		Set("disable-dev-shm-usage")
	if spec.bin != "" {
		l = l.Bin(spec.bin)
	}
	return l
}

// Launch starts the browser and connects to it. A partly started browser
// is torn down before the error is returned.
func (rodLauncher) Launch(ctx context.Context, spec launchSpec) (browserSession, error) {
	l := newLauncher(spec).Context(ctx)

	u, err := l.Launch()
	if err != nil {
		s := &rodSession{launcher: l}
		_ = s.Close()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().Context(ctx).ControlURL(u)
	if err := b.Connect(); err != nil {
		s := &rodSession{launcher: l}
		_ = s.Close()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &rodSession{launcher: l, browser: b}, nil
}

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// PrintToPDF loads htmlPath, waits for network idle plus settle, and prints.
func (s *rodSession) PrintToPDF(ctx context.Context, htmlPath string, settle time.Duration) ([]byte, error) {
	page, err := s.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}

	wait := page.WaitNavigation(proto.PageLifecycleEventNameNetworkIdle)
	if err := page.Navigate("file://" + htmlPath); err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}
	wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}

	select {
	case <-time.After(settle):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	r, err := page.PDF(pdfOptions())
	if err != nil {
		return nil, fmt.Errorf("printing: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %w", err)
	}
	return data, nil
}

func pdfOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginTBInches),
		MarginBottom:    floatPtr(marginTBInches),
		MarginLeft:      floatPtr(marginLRInches),
		MarginRight:     floatPtr(marginLRInches),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// Close shuts the browser down: graceful close, then kill of the launcher
// and the whole process group, then removal of the profile directory.
func (s *rodSession) Close() error {
	var errs []error

	if s.browser != nil {
		ctx, cancel := context.WithTimeout(context.Background(), closeBrowserBudget)
		if err := s.browser.Context(ctx).Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
		}
		cancel()
	}

	// A launcher whose process never started has nothing to kill, and its
	// Cleanup would block forever waiting for the exit.
	if s.launcher != nil && s.launcher.PID() > 0 {
		pid := s.launcher.PID()
		s.launcher.Kill()
		if err := process.KillProcessGroup(pid); err != nil {
			errs = append(errs, fmt.Errorf("killing process group %d: %w", pid, err))
		}
		s.launcher.Cleanup()
	}
	return errors.Join(errs...)
}
