package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alnah/go-docfill/internal/server"
	"github.com/alnah/go-docfill/internal/templates"
)

// runServe starts the HTTP API and blocks until a signal arrives.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 0 {
		return fmt.Errorf("%w: serve takes no arguments", ErrUsage)
	}

	cfg, err := loadSettings(flags.common, flags.engine, env)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.templates != "" {
		cfg.Server.TemplatesDir = flags.templates
	}

	log := newLogger(cfg, env.Stderr)
	pipeline, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}

	store, err := templates.NewStore(cfg.Server.TemplatesDir)
	if err != nil {
		log.Warn().Err(err).Msg("template listing disabled")
		store = nil
	} else {
		log.Info().Str("dir", store.Dir()).Msg("serving templates")
	}

	srv := server.New(pipeline, store, server.Config{
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
	}, log)

	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
