package main

import (
	"fmt"

	"github.com/alnah/go-mdpreview"
)

// runThemes lists the available theme names, one per line.
func runThemes(args []string, env *Environment) error {
	flags, err := parseThemesFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}

	cfg, err := loadConfig(flags, env)
	if err != nil {
		return err
	}

	names, err := mdpreview.Themes(cfg.Render.AssetPath)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(env.Stdout, name)
	}
	return nil
}
