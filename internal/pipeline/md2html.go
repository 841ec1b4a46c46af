package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// pageTemplate wraps a body fragment in a complete HTML5 document.
// Styles and scripts are injected before </head> afterwards.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// Converted is the output of a markdown conversion.
type Converted struct {
	Title string // front matter title, empty when absent
	Body  string // HTML fragment
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (*Converted, error)
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with the preview's fixed
// extension set: strikethrough, tables, autolinks, task lists and superscript.
// Raw HTML in the source passes through.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Table,
			extension.Linkify,
			extension.TaskList,
			Superscript,
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML strips front matter and converts the remaining Markdown to an HTML
// fragment. Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (*Converted, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var title string
	if meta, body, ok := SplitFrontMatter(content); ok {
		title = ParseFrontMatter(meta).Title
		content = body
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return &Converted{Title: title, Body: r.html}, nil
	}
}

// WrapPage builds the page skeleton around a body fragment.
func WrapPage(title, body string) string {
	return fmt.Sprintf(pageTemplate, html.EscapeString(title), body)
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)
