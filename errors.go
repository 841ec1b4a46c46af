package mdpreview

import (
	"errors"

	"github.com/alnah/go-mdpreview/internal/highlight"
)

// Sentinel errors for library operations.
var (
	ErrEmptySource      = errors.New("source path cannot be empty")
	ErrInvalidTheme     = errors.New("invalid theme")
	ErrInvalidTransport = errors.New("invalid live-reload transport")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// ErrUnknownLanguage is returned by highlighters for an unrecognized
	// fence language. The block is left as plain preformatted text.
	ErrUnknownLanguage = highlight.ErrUnknownLanguage
)
