package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/highlight"
	"github.com/alnah/go-mdpreview/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrNoSource       = errors.New("no markdown source specified")
	ErrUnknownCommand = errors.New("unknown command")
)

// usageError wraps a flag parse error. The help request passes through
// unwrapped so run can exit cleanly.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// setMaxProcs configures GOMAXPROCS, logging the decision in verbose mode.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
}

// logOutputs returns the writers for normal and per-event diagnostics.
// Quiet silences both; verbose enables the second.
func logOutputs(env *Environment, f commonFlags) (info, debug io.Writer) {
	info, debug = env.Stderr, io.Discard
	if f.quiet {
		return io.Discard, io.Discard
	}
	if f.verbose {
		debug = env.Stderr
	}
	return info, debug
}

func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.New(w, prefix, log.Ltime)
}

// loadConfig builds the effective configuration.
// Precedence: CLI flags > MDPREVIEW_* env vars > config file > defaults.
func loadConfig(f *cliFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()
	if !f.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	name := f.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges explicitly set CLI flags into config. CLI values override config values.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	// Server
	if f.changed("host") {
		cfg.Server.Host = f.server.host
	}
	if f.changed("port") {
		cfg.Server.Port = f.server.port
	}

	// Render
	if f.changed("theme") {
		cfg.Render.Theme = f.render.theme
	}
	if f.changed("stylesheet") {
		cfg.Render.Stylesheet = f.render.stylesheet
	}
	if f.changed("asset-path") {
		cfg.Render.AssetPath = f.render.assetPath
	}
	if f.changed("toc") {
		cfg.Render.TOC = f.render.toc
	}

	// Highlight
	if f.changed("highlight-style") {
		cfg.Highlight.Style = f.highlight.style
	}
	if f.changed("highlight-cmd") {
		cfg.Highlight.Command = strings.Fields(f.highlight.command)
	}
	if f.changed("no-highlight") {
		cfg.Highlight.Enabled = !f.highlight.disabled
	}

	// Live reload
	if f.changed("transport") {
		cfg.LiveReload.Transport = f.liveReload.transport
	}
	if f.changed("debounce") {
		cfg.LiveReload.Debounce = f.liveReload.debounce
	}
	if f.changed("no-live-reload") {
		cfg.LiveReload.Enabled = !f.liveReload.disabled
	}
}

// resolveSource picks the markdown file: positional argument first, then config.
func resolveSource(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected one markdown file, got %d", ErrUsage, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Source != "":
		return cfg.Source, nil
	}
	return "", ErrNoSource
}

// highlighterOption returns the renderer option for the configured
// highlighter, or nil to keep the renderer's chroma default.
// A configured command that cannot be found disables highlighting with a warning.
func highlighterOption(cfg *config.Config, warn *log.Logger) (mdpreview.Option, error) {
	switch {
	case !cfg.Highlight.Enabled:
		return mdpreview.WithHighlighter(nil), nil

	case len(cfg.Highlight.Command) > 0:
		cmd, err := highlight.NewCommand(cfg.Highlight.Command, cfg.HighlightTimeout())
		if err != nil {
			return nil, err
		}
		if err := cmd.Check(); err != nil {
			warn.Printf("warning: highlighting disabled: %v%s", err, hints.ForHighlightCommand(err))
			return mdpreview.WithHighlighter(nil), nil
		}
		return mdpreview.WithHighlighter(cmd), nil

	case cfg.Highlight.Style != "":
		c, err := highlight.NewChroma(cfg.Highlight.Style)
		if err != nil {
			return nil, err
		}
		return mdpreview.WithHighlighter(c), nil
	}
	return nil, nil
}

// buildRenderer creates the renderer for source. liveReload reflects
// whether a watcher is actually running, not just the config. Unreadable
// source and stylesheet go to warn; per-render details go to debug.
func buildRenderer(source string, cfg *config.Config, liveReload bool, debug, warn *log.Logger) (*mdpreview.Renderer, error) {
	rc := mdpreview.RenderConfig{
		Source:     source,
		Stylesheet: cfg.Render.Stylesheet,
		Theme:      mdpreview.Theme(cfg.Render.Theme),
		TOC:        cfg.Render.TOC,
		LiveReload: liveReload,
		Transport:  mdpreview.Transport(strings.ToLower(cfg.LiveReload.Transport)),
	}

	opts := []mdpreview.Option{
		mdpreview.WithLogger(warn),
		mdpreview.WithDebugLogger(debug),
	}
	if cfg.Render.AssetPath != "" {
		opts = append(opts, mdpreview.WithAssetPath(cfg.Render.AssetPath))
	}
	hl, err := highlighterOption(cfg, warn)
	if err != nil {
		return nil, err
	}
	if hl != nil {
		opts = append(opts, hl)
	}

	r, err := mdpreview.NewRenderer(rc, opts...)
	if errors.Is(err, mdpreview.ErrInvalidTheme) {
		themes, _ := mdpreview.Themes(cfg.Render.AssetPath)
		return nil, fmt.Errorf("%w%s", err, hints.ForThemeNotFound(themes))
	}
	return r, err
}
