package logging_test

// Notes:
// - Console output contains ANSI colour codes unless NoColor is set; the
//   tests only assert on the JSON format.

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alnah/go-docfill/internal/logging"
)

// ---------------------------------------------------------------------------
// TestParseLevel - Level names
// ---------------------------------------------------------------------------

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := logging.ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNew - Output format and filtering
// ---------------------------------------------------------------------------

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "warn", Format: "json", Output: &buf})

	log.Info().Msg("dropped")
	log.Warn().Str("bin", "/usr/bin/chromium").Msg("launch retry")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for key, want := range map[string]string{
		"level":   "warn",
		"message": "launch retry",
		"service": "docfill",
		"bin":     "/usr/bin/chromium",
	} {
		if entry[key] != want {
			t.Errorf("entry[%q] = %v, want %q", key, entry[key], want)
		}
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry has no timestamp")
	}
}

func TestNew_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logging.New(logging.Config{Output: &buf})
	log.Info().Msg("listening")

	if !strings.Contains(buf.String(), "listening") {
		t.Errorf("console output = %q", buf.String())
	}
	if strings.HasPrefix(buf.String(), "{") {
		t.Error("default format produced JSON")
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	log := logging.Nop()
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("Nop().GetLevel() = %v, want disabled", log.GetLevel())
	}
}
