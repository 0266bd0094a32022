// Package browser decides which Chrome executable the render engine launches.
//
// The decision is made once, in priority order:
//
//  1. an explicit path, when it names an existing file;
//  2. the newest build in a puppeteer-style cache directory
//     (<cache>/<platform>-<version>/<archive dir>/<binary>);
//  3. nothing, leaving discovery to the launcher's own lookup.
package browser

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-docfill/internal/fileutil"
)

// Source names where a decision came from.
type Source string

const (
	SourceConfig  Source = "config"
	SourceCache   Source = "cache"
	SourceDefault Source = "default"
)

// Options are the discovery inputs.
type Options struct {
	Bin      string // explicit executable path
	CacheDir string // defaults to DefaultCacheDir()
	GOOS     string // defaults to runtime.GOOS
	GOARCH   string // defaults to runtime.GOARCH
}

// Result is a discovery decision. Bin is empty for SourceDefault.
type Result struct {
	Bin     string
	Source  Source
	Version string // cache builds only
	// Ignored holds an explicit path that did not exist.
	Ignored string
}

// DefaultCacheDir is the cache puppeteer installs Chrome builds into.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", "puppeteer", "chrome")
}

// Locate applies the discovery policy. It never fails: an unusable
// candidate falls through to the next step.
func Locate(opts Options) Result {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.GOARCH == "" {
		opts.GOARCH = runtime.GOARCH
	}
	if opts.CacheDir == "" {
		opts.CacheDir = DefaultCacheDir()
	}

	var res Result
	if opts.Bin != "" {
		if fileutil.FileExists(opts.Bin) {
			return Result{Bin: opts.Bin, Source: SourceConfig}
		}
		res.Ignored = opts.Bin
	}

	if bin, version, ok := scanCache(opts); ok {
		res.Bin, res.Source, res.Version = bin, SourceCache, version
		return res
	}

	res.Source = SourceDefault
	return res
}

// layout describes one platform's cache naming.
type layout struct {
	prefix string // directory prefix before the version, dash included
	binary string // path below the version directory
}

func layoutFor(goos, goarch string) (layout, bool) {
	switch goos {
	case "linux":
		return layout{"linux-", filepath.Join("chrome-linux64", "chrome")}, true
	case "darwin":
		app := filepath.Join("Google Chrome for Testing.app", "Contents", "MacOS", "Google Chrome for Testing")
		if goarch == "arm64" {
			return layout{"mac_arm-", filepath.Join("chrome-mac-arm64", app)}, true
		}
		return layout{"mac-", filepath.Join("chrome-mac-x64", app)}, true
	case "windows":
		if goarch == "386" {
			return layout{"win32-", filepath.Join("chrome-win32", "chrome.exe")}, true
		}
		return layout{"win64-", filepath.Join("chrome-win64", "chrome.exe")}, true
	}
	return layout{}, false
}

// scanCache picks the highest version whose binary exists. A newer build
// with a missing binary (interrupted install) is skipped.
func scanCache(opts Options) (bin, version string, ok bool) {
	lay, known := layoutFor(opts.GOOS, opts.GOARCH)
	if !known || opts.CacheDir == "" {
		return "", "", false
	}
	entries, err := os.ReadDir(opts.CacheDir)
	if err != nil {
		return "", "", false
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, found := strings.CutPrefix(e.Name(), lay.prefix)
		if !found || !isVersion(v) {
			continue
		}
		if ok && CompareVersions(v, version) <= 0 {
			continue
		}
		candidate := filepath.Join(opts.CacheDir, e.Name(), lay.binary)
		if !fileutil.FileExists(candidate) {
			continue
		}
		bin, version, ok = candidate, v, true
	}
	return bin, version, ok
}
