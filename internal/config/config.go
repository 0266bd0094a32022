// Package config loads docfill's YAML configuration file.
// Environment variables and flags are layered on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docfill/internal/fileutil"
	"github.com/alnah/go-docfill/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config dir.
const AppDir = "go-docfill"

// Defaults.
const (
	DefaultAddr         = ":5001"
	DefaultTemplatesDir = "templates"
	DefaultMaxUploadMB  = 20
	DefaultTimeout      = "60s"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

// Limits.
const (
	MaxPathLength  = 4096
	MaxAddrLength  = 255
	MaxUploadMB    = 1024
	MaxTimeout     = 10 * time.Minute
	MinTimeout     = time.Second
	MaxLevelLength = 10
)

// Config holds all docfill settings.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Browser BrowserConfig `yaml:"browser"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	TemplatesDir string `yaml:"templatesDir"`
	MaxUploadMB  int    `yaml:"maxUploadMB"`
}

// BrowserConfig configures Chrome discovery and render deadlines.
type BrowserConfig struct {
	Bin      string `yaml:"bin"`      // explicit executable, ignored when missing
	CacheDir string `yaml:"cacheDir"` // empty = ~/.cache/puppeteer/chrome
	Timeout  string `yaml:"timeout"`  // Go duration, e.g. "60s"
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         DefaultAddr,
			TemplatesDir: DefaultTemplatesDir,
			MaxUploadMB:  DefaultMaxUploadMB,
		},
		Browser: BrowserConfig{Timeout: DefaultTimeout},
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// TimeoutDuration parses Browser.Timeout. Empty means DefaultTimeout.
func (b BrowserConfig) TimeoutDuration() (time.Duration, error) {
	s := b.Timeout
	if s == "" {
		s = DefaultTimeout
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: browser.timeout %q: %v", ErrInvalidValue, b.Timeout, err)
	}
	if d < MinTimeout || d > MaxTimeout {
		return 0, fmt.Errorf("%w: browser.timeout must be between %s and %s, got %s", ErrInvalidValue, MinTimeout, MaxTimeout, d)
	}
	return d, nil
}

// Validate checks ranges, enumerations and field lengths.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"server.templatesDir", c.Server.TemplatesDir, MaxPathLength},
		{"browser.bin", c.Browser.Bin, MaxPathLength},
		{"browser.cacheDir", c.Browser.CacheDir, MaxPathLength},
		{"log.level", c.Log.Level, MaxLevelLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Server.MaxUploadMB < 0 || c.Server.MaxUploadMB > MaxUploadMB {
		return fmt.Errorf("%w: server.maxUploadMB must be between 0 and %d, got %d", ErrInvalidValue, MaxUploadMB, c.Server.MaxUploadMB)
	}
	if _, err := c.Browser.TimeoutDuration(); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("%w: log.level %q (must be trace, debug, info, warn, error or disabled)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q (must be console or json)", ErrInvalidValue, c.Log.Format)
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads a config file by path or by name. Names are searched as
// ./name.yaml, ./name.yml, then under the user config dir. Keys missing from
// the file keep their defaults. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath returns the first existing candidate, or
// ErrConfigNotFound listing every path tried.
func resolveConfigPath(name string) (string, error) {
	candidates := SearchPaths(name)
	for _, p := range candidates {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(candidates, ", "))
}

// SearchPaths lists where LoadConfig looks for a named config.
func SearchPaths(name string) []string {
	exts := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(exts)*2)
	for _, ext := range exts {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range exts {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}
