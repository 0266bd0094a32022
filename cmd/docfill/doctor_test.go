package main

// Notes:
// - runDoctor is pointed at an empty cache and a missing binary so the
//   result does not depend on the machine's browsers beyond LookPath.

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-docfill/internal/browser"
)

func writeExecutable(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o700); err != nil { // #nosec G306 -- test fixture
		t.Fatal(err)
	}
}

func TestRunDoctor_IgnoredBinary(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "chrome")
	r := runDoctor(browser.Options{Bin: missing, CacheDir: t.TempDir()})

	if r.Browser.Source != string(browser.SourceDefault) {
		t.Errorf("Source = %q, want default", r.Browser.Source)
	}
	if r.Browser.Ignored != missing {
		t.Errorf("Ignored = %q, want %q", r.Browser.Ignored, missing)
	}
	if r.Status == statusReady {
		t.Error("Status = ready, want warnings for an ignored binary")
	}
	if !r.System.TempWritable {
		t.Error("TempWritable = false")
	}
}

func TestRunDoctor_CacheBuild(t *testing.T) {
	t.Parallel()

	cache := t.TempDir()
	bin := filepath.Join(cache, "linux-120.0.6099.109", "chrome-linux64", "chrome")
	writeExecutable(t, bin)

	r := runDoctor(browser.Options{CacheDir: cache, GOOS: "linux", GOARCH: "amd64"})
	if r.Browser.Source != string(browser.SourceCache) || r.Browser.Path != bin {
		t.Errorf("Browser = %+v, want cache build %s", r.Browser, bin)
	}
	if r.Browser.Version != "120.0.6099.109" {
		t.Errorf("Version = %q", r.Browser.Version)
	}
}

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(map[string]string{
		"DOCFILL_LOG_LEVEL":     "disabled",
		"DOCFILL_BROWSER_CACHE": t.TempDir(),
	})
	code := runMain([]string{"docfill", "doctor", "--json"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}

	var got doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if got.Status == "" || got.Env.OS == "" {
		t.Errorf("incomplete result: %+v", got)
	}
}

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printDoctorResult(&buf, &doctorResult{
		Status:   statusErrors,
		Browser:  browserInfo{Source: "config", Path: "/opt/chrome"},
		Errors:   []string{"temp directory not writable"},
		Warnings: []string{"something odd"},
	})

	out := buf.String()
	for _, want := range []string{"Source: config", "Path: /opt/chrome", "[WARN] something odd", "[ERROR] temp directory not writable", "Status: NOT READY"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}
