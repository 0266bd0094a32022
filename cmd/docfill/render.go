package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	docfill "github.com/alnah/go-docfill"
)

// CLI I/O errors.
var (
	ErrReadValues  = errors.New("cannot read values file")
	ErrWriteOutput = errors.New("cannot write output")
)

// runRender fills a template and writes the result.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: render takes exactly one template file", ErrUsage)
	}
	path := positional[0]

	target, err := docfill.ParseFormat(flags.format)
	if err != nil {
		return withHint(err, path)
	}
	values, err := collectValues(flags.valuesFile, flags.set)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common, flags.engine, env)
	if err != nil {
		return err
	}
	log := newLogger(cfg, env.Stderr)
	pipeline, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}

	res, err := pipeline.Render(ctx, path, values, target)
	if err != nil {
		return withHint(err, path)
	}

	out := flags.output
	if out == "" {
		out = defaultOutputPath(path, res.Extension())
	}
	if err := os.WriteFile(out, res.Data, 0o644); err != nil { // #nosec G306 -- user document
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	log.Info().Str("output", out).Int("bytes", len(res.Data)).Msg("document written")
	return nil
}

// collectValues merges the values file with --set pairs; --set wins.
func collectValues(valuesFile string, pairs []string) (map[string]string, error) {
	values := map[string]string{}
	if valuesFile != "" {
		data, err := os.ReadFile(valuesFile) // #nosec G304 -- user-provided values file
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadValues, err)
		}
		if values, err = docfill.ParseValues(data); err != nil {
			return nil, fmt.Errorf("%s: %w", valuesFile, err)
		}
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: --set %q must be key=value", ErrUsage, pair)
		}
		values[key] = value
	}
	return values, nil
}

// defaultOutputPath puts "<name>.filled.<ext>" next to the template.
func defaultOutputPath(template, ext string) string {
	base := strings.TrimSuffix(template, filepath.Ext(template))
	return base + ".filled." + ext
}
