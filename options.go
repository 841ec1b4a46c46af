package mdpreview

import (
	"context"
	"log"
	"time"

	"github.com/alnah/go-mdpreview/internal/highlight"
)

// Option configures a Renderer.
type Option func(*Renderer)

// Highlighter renders one fenced code block as HTML. Returning
// ErrUnknownLanguage (or any error) keeps the block unchanged.
type Highlighter interface {
	Highlight(ctx context.Context, lang, code string) (string, error)
}

// WithAssetPath loads themes and scripts from path, falling back to the
// embedded assets for names it does not provide.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(r *Renderer) {
		r.loader = loader
	}
}

// WithHighlighter replaces the default chroma highlighter. A nil h disables
// highlighting. If h also has a `CSS() (string, error)` method, its output
// is added to the page styles.
func WithHighlighter(h Highlighter) Option {
	return func(r *Renderer) {
		r.highlighter = h
		r.highlighterSet = true
	}
}

// WithLogger sets the logger for warnings: an unreadable source or
// stylesheet, reported on every render that hits it.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDebugLogger sets the logger for per-render details such as inlined
// images and code blocks the highlighter skipped.
func WithDebugLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.debug = l
		}
	}
}

// NewChromaHighlighter returns an in-process highlighter using a chroma
// style, e.g. "github" or "monokai".
func NewChromaHighlighter(style string) (Highlighter, error) {
	return highlight.NewChroma(style)
}

// NewCommandHighlighter returns a highlighter running argv for each block.
// "{lang}" in any argument is replaced by the fence language. A timeout
// <= 0 disables it.
func NewCommandHighlighter(argv []string, timeout time.Duration) (Highlighter, error) {
	return highlight.NewCommand(argv, timeout)
}

// ChromaStyleForTheme returns the chroma style paired with a theme.
func ChromaStyleForTheme(t Theme) string {
	return highlight.StyleForTheme(string(t))
}
