package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview [command] [flags] [file.md]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Serve a live preview of a markdown file (default)")
	fmt.Fprintln(w, "  render     Print the rendered page to stdout")
	fmt.Fprintln(w, "  themes     List available themes")
	fmt.Fprintln(w, "  doctor     Check the environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpreview help <command>' for details on a specific command.")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview serve <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the rendered file and push updates to open pages on every save.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file.md    Markdown file (optional if config has source)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --host <addr>         Address to listen on (default 127.0.0.1)")
	fmt.Fprintln(w, "  -p, --port <n>            Port to listen on (default 8081, 0 = any)")
	fmt.Fprintln(w)
	printRenderGroups(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Live Reload:")
	fmt.Fprintln(w, "      --transport <s>       Transport: sse, websocket")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before re-rendering (default 100ms)")
	fmt.Fprintln(w, "      --no-live-reload      Serve a static page")
	fmt.Fprintln(w)
	printCommonGroup(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview render <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the file once and print the page to stdout.")
	fmt.Fprintln(w)
	printRenderGroups(w)
	fmt.Fprintln(w)
	printCommonGroup(w)
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpreview themes [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List built-in themes and those found under --asset-path.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom themes and scripts directory")
}

func printRenderGroups(w io.Writer) {
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -t, --theme <name>        Theme: light, dark, or a custom name")
	fmt.Fprintln(w, "  -s, --stylesheet <path>   Extra CSS file, re-read on every render")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom themes and scripts directory")
	fmt.Fprintln(w, "      --toc                 Insert a table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style (default follows the theme)")
	fmt.Fprintln(w, "      --highlight-cmd <cmd> External highlighter, {lang} is substituted")
	fmt.Fprintln(w, "      --no-highlight        Disable code highlighting")
}

func printCommonGroup(w io.Writer) {
	fmt.Fprintln(w, "Config and Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every file event and render")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "serve":
		printServeUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "themes":
		printThemesUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: mdpreview doctor [--json] [-c config]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check file watching, the listen port and the highlighter.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpreview version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpreview help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
