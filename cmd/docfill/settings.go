package main

import (
	"errors"
	"io"

	"github.com/rs/zerolog"

	docfill "github.com/alnah/go-docfill"
	"github.com/alnah/go-docfill/internal/config"
	"github.com/alnah/go-docfill/internal/logging"
)

// defaultConfigName is looked up when neither --config nor DOCFILL_CONFIG
// is set. Its absence is not an error.
const defaultConfigName = "docfill"

// loadSettings layers flags > env > config file > defaults.
func loadSettings(common commonFlags, engine engineFlags, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)

	cfg, err := loadConfigFile(firstNonEmpty(common.config, envCfg.ConfigPath))
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)

	if engine.browser != "" {
		cfg.Browser.Bin = engine.browser
	}
	if engine.timeout != "" {
		cfg.Browser.Timeout = engine.timeout
	}
	if common.logLevel != "" {
		cfg.Log.Level = common.logLevel
	}
	if common.verbose {
		cfg.Log.Level = "debug"
	}
	if common.logFormat != "" {
		cfg.Log.Format = common.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(nameOrPath string) (*config.Config, error) {
	if nameOrPath != "" {
		return config.LoadConfig(nameOrPath)
	}
	cfg, err := config.LoadConfig(defaultConfigName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	return cfg, err
}

func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	return logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: w})
}

// newPipeline builds the pipeline; browser discovery runs here.
func newPipeline(cfg *config.Config, log zerolog.Logger) (*docfill.Pipeline, error) {
	timeout, err := cfg.Browser.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return docfill.New(
		docfill.WithLogger(log),
		docfill.WithBrowserBin(cfg.Browser.Bin),
		docfill.WithBrowserCache(cfg.Browser.CacheDir),
		docfill.WithTimeout(timeout),
	), nil
}
