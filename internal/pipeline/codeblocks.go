package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-mdpreview/internal/highlight"
)

// ErrEmptyHighlight indicates the highlighter produced no markup.
var ErrEmptyHighlight = errors.New("highlighter returned no markup")

const languageClassPrefix = "language-"

// CodeBlock is a pre > code element carrying a language class.
type CodeBlock struct {
	Lang string
	Code string
	pre  *html.Node
}

// FindCodeBlocks returns the highlightable code blocks in document order.
func FindCodeBlocks(doc *html.Node) []CodeBlock {
	var blocks []CodeBlock
	for _, pre := range findAll(doc, isElement(atom.Pre)) {
		code := firstElementChild(pre)
		if code == nil || code.DataAtom != atom.Code {
			continue
		}
		lang := languageOf(code)
		if lang == "" {
			continue
		}
		blocks = append(blocks, CodeBlock{Lang: lang, Code: textContent(code), pre: pre})
	}
	return blocks
}

// HighlightCode passes each code block to h and replaces its pre element
// with the returned markup. A block whose highlighting fails stays as it
// was; the per-block failures are returned for logging. The error result
// is only set when ctx is done.
func HighlightCode(ctx context.Context, doc *html.Node, h highlight.Highlighter) (failures []error, err error) {
	if h == nil {
		return nil, nil
	}

	for _, block := range FindCodeBlocks(doc) {
		if err := ctx.Err(); err != nil {
			return failures, err
		}

		out, err := h.Highlight(ctx, block.Lang, block.Code)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return failures, ctxErr
			}
			failures = append(failures, fmt.Errorf("%s block: %w", block.Lang, err))
			continue
		}

		if err := replaceWithFragment(block.pre, out); err != nil {
			failures = append(failures, fmt.Errorf("%s block: %w", block.Lang, err))
		}
	}

	return failures, nil
}

// replaceWithFragment parses markup in the context of n's parent and
// substitutes the resulting nodes for n.
func replaceWithFragment(n *html.Node, markup string) error {
	if strings.TrimSpace(markup) == "" {
		return ErrEmptyHighlight
	}

	parent := n.Parent
	if parent == nil {
		return fmt.Errorf("%w: detached code block", ErrRender)
	}
	fragmentContext := parent
	if fragmentContext.Type != html.ElementNode {
		fragmentContext = newElement(atom.Body)
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), fragmentContext)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(nodes) == 0 {
		return ErrEmptyHighlight
	}

	for _, node := range nodes {
		parent.InsertBefore(node, n)
	}
	parent.RemoveChild(n)
	return nil
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// languageOf returns the token of the first language-<token> class.
func languageOf(code *html.Node) string {
	v, _ := getAttr(code, "class")
	for _, tok := range strings.Fields(v) {
		if lang, ok := strings.CutPrefix(tok, languageClassPrefix); ok && lang != "" {
			return lang
		}
	}
	return ""
}
