// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-docfill/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// IsInCI reports whether a common CI environment variable is set.
func IsInCI() bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForBrowserLaunch returns hints for a browser that could not be started.
func ForBrowserLaunch() string {
	var hints []string

	if IsInCI() || IsInContainer() {
		hints = append(hints, "install chromium in the image or mount a Chrome build")
	}
	if os.Getenv("DOCFILL_BROWSER_BIN") == "" && os.Getenv("PUPPETEER_EXECUTABLE_PATH") == "" {
		hints = append(hints, "set DOCFILL_BROWSER_BIN to an installed Chrome")
	}
	hints = append(hints, "run 'docfill doctor' to see which browser was picked")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow renders.
func ForTimeout() string {
	return format("for long documents, raise --timeout or DOCFILL_TIMEOUT")
}

// ForConfigNotFound suggests --config or creating a file in the user config dir.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-docfill") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForTemplateNotFound lists the templates that do exist.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return format("the templates directory is empty")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMalformedTag explains merge field syntax.
func ForMalformedTag() string {
	return format("write fields as {name}; every '{' needs a matching '}' in the same paragraph")
}

// ForUnsupportedFormat lists accepted templates and output formats.
func ForUnsupportedFormat() string {
	return format("templates must be .docx or .pdf; --format accepts docx or pdf")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
