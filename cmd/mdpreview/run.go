package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// commands lists the subcommand names. Anything else starts the server.
var commands = map[string]bool{
	"serve":   true,
	"render":  true,
	"themes":  true,
	"doctor":  true,
	"version": true,
	"help":    true,
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return commands[arg]
}

// run dispatches args to a command and returns the process exit code.
// "mdpreview README.md" is shorthand for "mdpreview serve README.md".
func run(ctx context.Context, args []string, env *Environment) int {
	cmd, rest := "serve", args
	if len(args) > 0 && isCommand(args[0]) {
		cmd, rest = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe(ctx, rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "themes":
		err = runThemes(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "mdpreview %s\n", Version)
		return ExitSuccess
	case "help":
		err = runHelp(rest, env)
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, "error:", err)
	return exitCodeFor(err)
}
