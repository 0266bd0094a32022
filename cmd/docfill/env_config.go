package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-docfill/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath   string // DOCFILL_CONFIG
	Addr         string // DOCFILL_ADDR, then PORT
	TemplatesDir string // DOCFILL_TEMPLATES_DIR
	BrowserBin   string // DOCFILL_BROWSER_BIN, then PUPPETEER_EXECUTABLE_PATH, then ROD_BROWSER_BIN
	BrowserCache string // DOCFILL_BROWSER_CACHE
	Timeout      string // DOCFILL_TIMEOUT
	LogLevel     string // DOCFILL_LOG_LEVEL
	LogFormat    string // DOCFILL_LOG_FORMAT
}

// knownEnvVars lists valid DOCFILL_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCFILL_CONFIG":        true,
	"DOCFILL_ADDR":          true,
	"DOCFILL_TEMPLATES_DIR": true,
	"DOCFILL_BROWSER_BIN":   true,
	"DOCFILL_BROWSER_CACHE": true,
	"DOCFILL_TIMEOUT":       true,
	"DOCFILL_LOG_LEVEL":     true,
	"DOCFILL_LOG_FORMAT":    true,
}

// loadEnvConfig reads the DOCFILL_* variables and their fallbacks.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath:   getenv("DOCFILL_CONFIG"),
		Addr:         firstNonEmpty(getenv("DOCFILL_ADDR"), portAddr(getenv("PORT"))),
		TemplatesDir: getenv("DOCFILL_TEMPLATES_DIR"),
		BrowserBin: firstNonEmpty(
			getenv("DOCFILL_BROWSER_BIN"),
			getenv("PUPPETEER_EXECUTABLE_PATH"),
			getenv("ROD_BROWSER_BIN"),
		),
		BrowserCache: getenv("DOCFILL_BROWSER_CACHE"),
		Timeout:      getenv("DOCFILL_TIMEOUT"),
		LogLevel:     getenv("DOCFILL_LOG_LEVEL"),
		LogFormat:    getenv("DOCFILL_LOG_FORMAT"),
	}
}

// portAddr turns a bare PORT value into a listen address.
func portAddr(port string) string {
	if port == "" {
		return ""
	}
	return ":" + strings.TrimPrefix(port, ":")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// warnUnknownEnvVars prints a warning for each unrecognized DOCFILL_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "DOCFILL_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with the set variables.
// Flags are applied afterwards: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.TemplatesDir != "" {
		cfg.Server.TemplatesDir = env.TemplatesDir
	}
	if env.BrowserBin != "" {
		cfg.Browser.Bin = env.BrowserBin
	}
	if env.BrowserCache != "" {
		cfg.Browser.CacheDir = env.BrowserCache
	}
	if env.Timeout != "" {
		cfg.Browser.Timeout = env.Timeout
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
