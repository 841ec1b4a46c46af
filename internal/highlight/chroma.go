package highlight

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Chroma highlights code in process with chroma lexers. Output uses CSS
// classes, so the page needs the stylesheet returned by CSS.
type Chroma struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChroma creates a Chroma highlighter using the named style.
// Returns ErrUnknownStyle for names chroma does not register.
func NewChroma(styleName string) (*Chroma, error) {
	if !slices.Contains(styles.Names(), styleName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}
	return &Chroma{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}, nil
}

// Highlight tokenises code with the lexer registered for lang.
func (c *Chroma) Highlight(ctx context.Context, lang, code string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenising %s: %w", lang, err)
	}

	var sb strings.Builder
	if err := c.formatter.Format(&sb, c.style, iterator); err != nil {
		return "", fmt.Errorf("formatting %s: %w", lang, err)
	}
	return sb.String(), nil
}

// CSS returns the stylesheet for the classes Highlight emits.
func (c *Chroma) CSS() (string, error) {
	var sb strings.Builder
	if err := c.formatter.WriteCSS(&sb, c.style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return sb.String(), nil
}

// Compile-time interface check.
var _ Highlighter = (*Chroma)(nil)
