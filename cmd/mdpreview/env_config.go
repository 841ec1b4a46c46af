package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdpreview/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // MDPREVIEW_CONFIG: config file name or path
	Host           string // MDPREVIEW_HOST: listen host
	Port           int    // MDPREVIEW_PORT: listen port (-1 = unset)
	Theme          string // MDPREVIEW_THEME: page theme
	Stylesheet     string // MDPREVIEW_STYLESHEET: extra CSS file
	AssetPath      string // MDPREVIEW_ASSET_PATH: custom asset directory
	Transport      string // MDPREVIEW_TRANSPORT: sse or websocket
	Debounce       string // MDPREVIEW_DEBOUNCE: Go duration
	HighlightStyle string // MDPREVIEW_HIGHLIGHT_STYLE: chroma style
}

// knownEnvVars lists valid MDPREVIEW_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPREVIEW_CONFIG":          true,
	"MDPREVIEW_HOST":            true,
	"MDPREVIEW_PORT":            true,
	"MDPREVIEW_THEME":           true,
	"MDPREVIEW_STYLESHEET":      true,
	"MDPREVIEW_ASSET_PATH":      true,
	"MDPREVIEW_TRANSPORT":       true,
	"MDPREVIEW_DEBOUNCE":        true,
	"MDPREVIEW_HIGHLIGHT_STYLE": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("MDPREVIEW_CONFIG"),
		Host:           os.Getenv("MDPREVIEW_HOST"),
		Port:           -1,
		Theme:          os.Getenv("MDPREVIEW_THEME"),
		Stylesheet:     os.Getenv("MDPREVIEW_STYLESHEET"),
		AssetPath:      os.Getenv("MDPREVIEW_ASSET_PATH"),
		Transport:      os.Getenv("MDPREVIEW_TRANSPORT"),
		Debounce:       os.Getenv("MDPREVIEW_DEBOUNCE"),
		HighlightStyle: os.Getenv("MDPREVIEW_HIGHLIGHT_STYLE"),
	}

	if port := os.Getenv("MDPREVIEW_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p >= 0 {
			cfg.Port = p
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDPREVIEW_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDPREVIEW_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set environment values on the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Host != "" {
		cfg.Server.Host = env.Host
	}
	if env.Port >= 0 {
		cfg.Server.Port = env.Port
	}
	if env.Theme != "" {
		cfg.Render.Theme = env.Theme
	}
	if env.Stylesheet != "" {
		cfg.Render.Stylesheet = env.Stylesheet
	}
	if env.AssetPath != "" {
		cfg.Render.AssetPath = env.AssetPath
	}
	if env.Transport != "" {
		cfg.LiveReload.Transport = env.Transport
	}
	if env.Debounce != "" {
		cfg.LiveReload.Debounce = env.Debounce
	}
	if env.HighlightStyle != "" {
		cfg.Highlight.Style = env.HighlightStyle
	}
}
