package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docfill/internal/docxpkg"
	"github.com/alnah/go-docfill/internal/placeholder"
)

// runTokens prints the placeholders of a template, one per line.
// With --verbose every occurrence is printed with its offset in the
// flattened text.
func runTokens(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseTokensFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: tokens takes exactly one template file", ErrUsage)
	}
	path := positional[0]

	cfg, err := loadSettings(flags.common, engineFlags{}, env)
	if err != nil {
		return err
	}
	log := newLogger(cfg, env.Stderr)
	pipeline, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}

	names, err := pipeline.ListTokens(ctx, path)
	if err != nil {
		return withHint(err, path)
	}

	switch {
	case flags.json:
		enc := json.NewEncoder(env.Stdout)
		return enc.Encode(names)
	case flags.common.verbose:
		text, err := flattenedText(path)
		if err != nil {
			return withHint(err, path)
		}
		for _, m := range placeholder.Scan(text) {
			fmt.Fprintf(env.Stdout, "%d\t%s\n", m.Start, m.Name)
		}
	default:
		for _, n := range names {
			fmt.Fprintln(env.Stdout, n)
		}
	}
	return nil
}

// flattenedText returns the text placeholders are matched against.
func flattenedText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided template
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	pkg, err := docxpkg.OpenFile(path)
	if err != nil {
		return "", err
	}
	return pkg.Text()
}
