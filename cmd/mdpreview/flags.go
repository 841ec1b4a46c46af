package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// serverFlags holds listen address flags.
type serverFlags struct {
	host string
	port int
}

// renderFlags holds page rendering flags.
type renderFlags struct {
	theme      string
	stylesheet string
	assetPath  string
	toc        bool
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	style    string
	command  string // split on whitespace into argv
	disabled bool
}

// liveReloadFlags holds live update flags.
type liveReloadFlags struct {
	transport string
	debounce  string
	disabled  bool
}

// cliFlags holds every flag group. Commands register only the groups
// they use; the rest stay zero and report unchanged.
type cliFlags struct {
	common     commonFlags
	server     serverFlags
	render     renderFlags
	highlight  highlightFlags
	liveReload liveReloadFlags

	fs *flag.FlagSet
}

// changed reports whether the named flag was set on the command line.
func (f *cliFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every file event and render")
}

// addServerFlags adds listen address flags to a FlagSet.
func addServerFlags(fs *flag.FlagSet, f *serverFlags) {
	fs.StringVar(&f.host, "host", "", "address to listen on (default 127.0.0.1)")
	fs.IntVarP(&f.port, "port", "p", 0, "port to listen on (default 8081, 0 = any free port)")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.theme, "theme", "t", "", "page theme: light, dark, or a name from --asset-path")
	fs.StringVarP(&f.stylesheet, "stylesheet", "s", "", "extra CSS file applied after the theme")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom themes and scripts directory")
	fs.BoolVar(&f.toc, "toc", false, "insert a table of contents")
}

// addHighlightFlags adds highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "highlight-style", "", "chroma style (default follows the theme)")
	fs.StringVar(&f.command, "highlight-cmd", "", "external highlighter command, {lang} is substituted")
	fs.BoolVar(&f.disabled, "no-highlight", false, "disable code highlighting")
}

// addLiveReloadFlags adds live update flags to a FlagSet.
func addLiveReloadFlags(fs *flag.FlagSet, f *liveReloadFlags) {
	fs.StringVar(&f.transport, "transport", "", "live update transport: sse, websocket")
	fs.StringVar(&f.debounce, "debounce", "", "quiet period before re-rendering (e.g. 100ms)")
	fs.BoolVar(&f.disabled, "no-live-reload", false, "serve a static page")
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, usage io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &cliFlags{fs: fs}

	addCommonFlags(fs, &f.common)
	addServerFlags(fs, &f.server)
	addRenderFlags(fs, &f.render)
	addHighlightFlags(fs, &f.highlight)
	addLiveReloadFlags(fs, &f.liveReload)

	fs.SetOutput(usage)
	fs.Usage = func() { printServeUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &cliFlags{fs: fs}

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addHighlightFlags(fs, &f.highlight)

	fs.SetOutput(usage)
	fs.Usage = func() { printRenderUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseThemesFlags parses themes command flags.
func parseThemesFlags(args []string, usage io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet("themes", flag.ContinueOnError)
	f := &cliFlags{fs: fs}

	fs.StringVarP(&f.common.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.render.assetPath, "asset-path", "", "custom themes and scripts directory")

	fs.SetOutput(usage)
	fs.Usage = func() { printThemesUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
