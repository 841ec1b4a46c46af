package pipeline

import (
	"context"
	"errors"
	"io"
	"log"

	"golang.org/x/net/html"

	"github.com/alnah/go-mdpreview/internal/highlight"
)

// TransformOptions configures the DOM post-processing stages.
type TransformOptions struct {
	BaseDir     string                // directory relative image paths resolve against
	Highlighter highlight.Highlighter // nil disables highlighting
	TOC         bool
	Logger      *log.Logger // per-block diagnostics; nil discards
}

// Transformer applies image inlining, highlight dispatch and the table of
// contents to a parsed document, in that order.
type Transformer struct {
	opts   TransformOptions
	logger *log.Logger
}

// NewTransformer creates a Transformer.
func NewTransformer(opts TransformOptions) *Transformer {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Transformer{opts: opts, logger: logger}
}

// Transform mutates doc in place. Per-image and per-block failures never
// fail the render; only a done context does.
func (t *Transformer) Transform(ctx context.Context, doc *html.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if n := InlineImages(doc, t.opts.BaseDir); n > 0 {
		t.logger.Printf("inlined %d image(s)", n)
	}

	failures, err := HighlightCode(ctx, doc, t.opts.Highlighter)
	if err != nil {
		return err
	}
	for _, f := range failures {
		if !errors.Is(f, highlight.ErrUnknownLanguage) {
			t.logger.Printf("highlight: %v", f)
		}
	}

	if t.opts.TOC {
		list, entries := BuildTOC(doc)
		InsertTOC(doc, list)
		t.logger.Printf("table of contents: %d heading(s)", len(entries))
	}

	return ctx.Err()
}
