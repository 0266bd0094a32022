package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-docfill/internal/browser"
	"github.com/alnah/go-docfill/internal/fileutil"
	"github.com/alnah/go-docfill/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	Browser  browserInfo `json:"browser"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// browserInfo is the discovery decision the engine would make.
type browserInfo struct {
	Source   string `json:"source"` // config, cache or default
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
	Ignored  string `json:"ignored,omitempty"`
	CacheDir string `json:"cache_dir"`
}

type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
}

type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, _, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		printError(env.Stderr, err)
		return ExitUsage
	}
	cfg, err := loadSettings(flags.common, engineFlags{}, env)
	if err != nil {
		printError(env.Stderr, err)
		return exitCodeFor(err)
	}

	result := runDoctor(browser.Options{Bin: cfg.Browser.Bin, CacheDir: cfg.Browser.CacheDir})

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(opts browser.Options) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env:    envInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	checkBrowser(result, opts)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

func checkBrowser(result *doctorResult, opts browser.Options) {
	if opts.CacheDir == "" {
		opts.CacheDir = browser.DefaultCacheDir()
	}
	found := browser.Locate(opts)
	result.Browser = browserInfo{
		Source:   string(found.Source),
		Path:     found.Bin,
		Version:  found.Version,
		Ignored:  found.Ignored,
		CacheDir: opts.CacheDir,
	}
	if found.Ignored != "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("configured browser %s does not exist and is ignored", found.Ignored))
	}

	if found.Source == browser.SourceDefault {
		path, ok := launcher.LookPath()
		if !ok {
			result.Warnings = append(result.Warnings,
				"no Chrome found; go-rod will download Chromium on first PDF conversion")
			return
		}
		result.Browser.Path = path
	}
	if result.Browser.Version == "" {
		result.Browser.Version = chromeVersion(result.Browser.Path)
	}
}

// chromeVersion runs "<bin> --version"; empty when it fails.
func chromeVersion(bin string) string {
	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- discovered browser path
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func checkEnvironment(result *doctorResult) {
	result.Env.Container = hints.IsInContainer()
	result.Env.CI = hints.IsInCI()
}

func checkSystem(result *doctorResult) {
	result.System.TempDir = os.TempDir()
	if err := fileutil.IsWritableDir(result.System.TempDir); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("temp directory not writable: %v", err))
		return
	}
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "docfill doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser")
	fmt.Fprintf(w, "  [OK] Source: %s\n", r.Browser.Source)
	if r.Browser.Path != "" {
		fmt.Fprintf(w, "  [OK] Path: %s\n", r.Browser.Path)
	}
	if r.Browser.Version != "" {
		fmt.Fprintf(w, "  [OK] Version: %s\n", r.Browser.Version)
	}
	fmt.Fprintf(w, "  [OK] Cache: %s\n", r.Browser.CacheDir)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  [OK] Temp directory: %s writable\n", r.System.TempDir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Temp directory: %s not writable\n", r.System.TempDir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: READY")
	case statusWarnings:
		fmt.Fprintln(w, "Status: READY (with warnings)")
	default:
		fmt.Fprintln(w, "Status: NOT READY")
	}
}
