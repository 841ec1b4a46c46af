package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/highlight"
	"github.com/alnah/go-mdpreview/internal/server"
)

// Exit codes for the mdpreview CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Clean shutdown or completed command
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBind    = 4 // Listen address unavailable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Bind errors (exit 4)
	if errors.Is(err, server.ErrBind) {
		return ExitBind
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoSource) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdpreview.ErrEmptySource) ||
		errors.Is(err, mdpreview.ErrInvalidTheme) ||
		errors.Is(err, mdpreview.ErrInvalidTransport) ||
		errors.Is(err, mdpreview.ErrStyleNotFound) ||
		errors.Is(err, mdpreview.ErrScriptNotFound) ||
		errors.Is(err, mdpreview.ErrInvalidAssetPath) ||
		errors.Is(err, highlight.ErrUnknownStyle) ||
		errors.Is(err, highlight.ErrEmptyCommand) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
