package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-mdpreview/internal/hints"
	"github.com/alnah/go-mdpreview/internal/server"
	"github.com/alnah/go-mdpreview/internal/watcher"
)

// runServe renders the source, serves it and pushes a new body on every
// change until interrupted. A watcher that cannot be set up downgrades to
// a static preview; only a bind failure is fatal once the config is valid.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
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

	info, debug := logOutputs(env, flags.common)
	watchLog := newLogger(info, "[watch] ")

	ctx, stop := notifyContext(ctx)
	defer stop()

	var w *watcher.Watcher
	if cfg.LiveReload.Enabled {
		w, err = watcher.New(source,
			watcher.WithDebounce(cfg.Debounce()),
			watcher.WithLogger(newLogger(debug, "[watch] ")),
		)
		if err != nil {
			watchLog.Printf("warning: live reload disabled: %v%s", err, hints.ForWatchSetup(err))
		}
	}
	liveReload := w != nil

	renderer, err := buildRenderer(source, cfg, liveReload, newLogger(debug, "[render] "), newLogger(info, "[render] "))
	if err != nil {
		if w != nil {
			_ = w.Close()
		}
		return err
	}

	srv := server.New(renderer, server.Config{
		Addr:       cfg.Addr(),
		LiveReload: liveReload,
	}, newLogger(info, "[server] "))

	if w != nil {
		go func() {
			if err := w.Run(ctx); err != nil {
				watchLog.Printf("warning: live reload stopped: %v%s", err, hints.ForWatchSetup(err))
			}
		}()
		go srv.Watch(ctx, w)
	}

	if err := srv.ListenAndServe(ctx); err != nil {
		if errors.Is(err, server.ErrBind) {
			return fmt.Errorf("%w%s", err, hints.ForBind(err))
		}
		return err
	}
	return nil
}
