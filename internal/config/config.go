// Package config loads the YAML configuration file of the preview server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength  = 4096 // PATH_MAX on Linux
	MaxHostLength  = 253  // DNS name limit
	MaxNameLength  = 64   // theme and style names
	MaxArgLength   = 1024 // single highlight command argument
	MaxCommandArgs = 32
)

// Defaults applied by DefaultConfig.
const (
	DefaultHost             = "127.0.0.1"
	DefaultPort             = 8081
	DefaultTransport        = "sse"
	DefaultDebounce         = 100 * time.Millisecond
	DefaultHighlightTimeout = 5 * time.Second
)

// ConfigDirName is the directory searched under the user config dir.
const ConfigDirName = "mdpreview"

// Config holds all configuration for the preview server.
type Config struct {
	Source     string           `yaml:"source"` // Markdown file (CLI argument wins)
	Server     ServerConfig     `yaml:"server"`
	Render     RenderConfig     `yaml:"render"`
	Highlight  HighlightConfig  `yaml:"highlight"`
	LiveReload LiveReloadConfig `yaml:"liveReload"`
}

// ServerConfig defines the listen address.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"` // 0 = pick a free port
}

// RenderConfig defines page rendering options.
type RenderConfig struct {
	Stylesheet string `yaml:"stylesheet"` // Extra CSS file appended after the theme
	Theme      string `yaml:"theme"`      // Empty = no theme
	TOC        bool   `yaml:"toc"`
	AssetPath  string `yaml:"assetPath"` // Custom themes/scripts directory (empty = embedded)
}

// HighlightConfig defines code block highlighting.
type HighlightConfig struct {
	Enabled bool     `yaml:"enabled"`
	Style   string   `yaml:"style"`   // Chroma style (empty = derived from theme)
	Command []string `yaml:"command"` // External highlighter argv, "{lang}" is substituted
	Timeout string   `yaml:"timeout"` // Per block, external command only
}

// LiveReloadConfig defines the live update stream.
type LiveReloadConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Transport string `yaml:"transport"` // "sse" or "websocket"
	Debounce  string `yaml:"debounce"`  // Go duration, e.g. "100ms"
}

// Validate checks field lengths, enumerations and durations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"source", c.Source, MaxPathLength},
		{"server.host", c.Server.Host, MaxHostLength},
		{"render.stylesheet", c.Render.Stylesheet, MaxPathLength},
		{"render.theme", c.Render.Theme, MaxNameLength},
		{"render.assetPath", c.Render.AssetPath, MaxPathLength},
		{"highlight.style", c.Highlight.Style, MaxNameLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 0 and 65535, got %d", ErrInvalidValue, c.Server.Port)
	}

	if len(c.Highlight.Command) > MaxCommandArgs {
		return fmt.Errorf("%w: highlight.command (%d args, max %d)", ErrFieldTooLong, len(c.Highlight.Command), MaxCommandArgs)
	}
	for i, arg := range c.Highlight.Command {
		if err := validateFieldLength(fmt.Sprintf("highlight.command[%d]", i), arg, MaxArgLength); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.LiveReload.Transport) {
	case "", "sse", "websocket":
	default:
		return fmt.Errorf("%w: liveReload.transport %q (must be sse or websocket)", ErrInvalidValue, c.LiveReload.Transport)
	}

	if _, err := parseDuration("liveReload.debounce", c.LiveReload.Debounce, DefaultDebounce); err != nil {
		return err
	}
	if _, err := parseDuration("highlight.timeout", c.Highlight.Timeout, DefaultHighlightTimeout); err != nil {
		return err
	}

	return nil
}

// Debounce returns the parsed debounce window, or DefaultDebounce when unset.
func (c *Config) Debounce() time.Duration {
	d, err := parseDuration("liveReload.debounce", c.LiveReload.Debounce, DefaultDebounce)
	if err != nil {
		return DefaultDebounce
	}
	return d
}

// HighlightTimeout returns the parsed highlighter timeout, or DefaultHighlightTimeout when unset.
func (c *Config) HighlightTimeout() time.Duration {
	d, err := parseDuration("highlight.timeout", c.Highlight.Timeout, DefaultHighlightTimeout)
	if err != nil {
		return DefaultHighlightTimeout
	}
	return d
}

// Addr returns host:port for the listener.
func (c *Config) Addr() string {
	host := c.Server.Host
	if host == "" {
		host = DefaultHost
	}
	return fmt.Sprintf("%s:%d", host, c.Server.Port)
}

// parseDuration parses a non-negative Go duration; empty yields def.
func parseDuration(field, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, field, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// loopback on port 8081, highlighting and SSE live reload on, no theme.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: DefaultHost, Port: DefaultPort},
		Highlight: HighlightConfig{
			Enabled: true,
			Timeout: DefaultHighlightTimeout.String(),
		},
		LiveReload: LiveReloadConfig{
			Enabled:   true,
			Transport: DefaultTransport,
			Debounce:  DefaultDebounce.String(),
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, ConfigDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations:
// the current directory first, then the user config directory.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
