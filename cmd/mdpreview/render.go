package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

// runRender writes the page for the source to stdout once.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	setMaxProcs(flags.common.verbose, env.Stderr)

	cfg, err := loadConfig(flags, env)
	if err != nil {
		return err
	}
	source, err := resolveSource(positional, cfg)
	if err != nil {
		return err
	}

	// The server shows an error page for a missing source; a one-shot
	// render reports it instead.
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	info, debug := logOutputs(env, flags.common)
	renderer, err := buildRenderer(source, cfg, false, newLogger(debug, "[render] "), newLogger(info, "[render] "))
	if err != nil {
		return err
	}

	res, err := renderer.Render(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(env.Stdout, res.Page)
	return err
}
