package config

// Notes:
// - Tests that chdir or set XDG_CONFIG_HOME do not run in parallel.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Built-in values
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	want := &Config{
		Server:  ServerConfig{Addr: ":5001", TemplatesDir: "templates", MaxUploadMB: 20},
		Browser: BrowserConfig{Timeout: "60s"},
		Log:     LogConfig{Level: "info", Format: "console"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("DefaultConfig() mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Ranges and enumerations
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "zero upload limit means default",
			mutate: func(c *Config) { c.Server.MaxUploadMB = 0 },
		},
		{
			name:    "negative upload limit",
			mutate:  func(c *Config) { c.Server.MaxUploadMB = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "upload limit too high",
			mutate:  func(c *Config) { c.Server.MaxUploadMB = MaxUploadMB + 1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unparsable timeout",
			mutate:  func(c *Config) { c.Browser.Timeout = "soon" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "timeout too short",
			mutate:  func(c *Config) { c.Browser.Timeout = "10ms" },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "empty timeout uses default",
			mutate: func(c *Config) { c.Browser.Timeout = "" },
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "log level case insensitive",
			mutate: func(c *Config) { c.Log.Level = "DEBUG" },
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "browser path too long",
			mutate:  func(c *Config) { c.Browser.Bin = strings.Repeat("a", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeoutDuration(t *testing.T) {
	t.Parallel()

	got, err := BrowserConfig{Timeout: "90s"}.TimeoutDuration()
	if err != nil || got != 90*time.Second {
		t.Errorf("TimeoutDuration() = %v, %v; want 90s", got, err)
	}
	got, err = BrowserConfig{}.TimeoutDuration()
	if err != nil || got != time.Minute {
		t.Errorf("TimeoutDuration() empty = %v, %v; want 1m", got, err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File resolution and decoding
// ---------------------------------------------------------------------------

func TestLoadConfig_Path(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "docfill.yaml", `
server:
  addr: ":8080"
browser:
  bin: /opt/chrome/chrome
log:
  format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	want := DefaultConfig()
	want.Server.Addr = ":8080"
	want.Browser.Bin = "/opt/chrome/chrome"
	want.Log.Format = "json"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name    string
		arg     string
		wantErr error
	}{
		{name: "empty name", arg: "", wantErr: ErrEmptyConfigName},
		{name: "missing path", arg: filepath.Join(dir, "absent.yaml"), wantErr: ErrConfigNotFound},
		{name: "unknown key", arg: writeConfig(t, dir, "typo.yaml", "server:\n  adr: x\n"), wantErr: ErrConfigParse},
		{name: "invalid value", arg: writeConfig(t, dir, "bad.yaml", "log:\n  level: loud\n"), wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(tt.arg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadConfig(%q) error = %v, want %v", tt.arg, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_ByNameInUserConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	writeConfig(t, dir, filepath.Join(AppDir, "work.yml"), "server:\n  maxUploadMB: 5\n")

	cfg, err := LoadConfig("work")
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.Server.MaxUploadMB != 5 {
		t.Errorf("MaxUploadMB = %d, want 5", cfg.Server.MaxUploadMB)
	}
}

func TestLoadConfig_NotFoundListsSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := LoadConfig("nothing")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "nothing.yaml") || !strings.Contains(err.Error(), AppDir) {
		t.Errorf("error %q does not list search paths", err)
	}
}
