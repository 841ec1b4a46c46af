// Package highlight provides syntax highlighters for fenced code blocks.
//
// A Highlighter turns a language token and source code into an HTML
// fragment replacing the original <pre> element. Chroma runs in process;
// Command delegates to an external program.
package highlight

import (
	"context"
	"errors"
)

// Sentinel errors for highlighting.
var (
	// ErrUnknownLanguage indicates no lexer matches the language token.
	// Callers treat it as a normal outcome and keep the block as is.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrUnknownStyle indicates the chroma style name is not registered.
	ErrUnknownStyle = errors.New("unknown highlight style")

	// ErrEmptyCommand indicates an external highlighter without argv.
	ErrEmptyCommand = errors.New("highlight command is empty")

	// ErrCommandFailed indicates the external highlighter exited with an error.
	ErrCommandFailed = errors.New("highlight command failed")
)

// Highlighter renders a code block as HTML.
type Highlighter interface {
	Highlight(ctx context.Context, lang, code string) (string, error)
}

// Chroma style names paired with the built-in page themes.
const (
	LightStyle = "github"
	DarkStyle  = "monokai"
)

// StyleForTheme returns the chroma style matching a page theme.
func StyleForTheme(theme string) string {
	if theme == "dark" {
		return DarkStyle
	}
	return LightStyle
}
