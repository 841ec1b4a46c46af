package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindSuperscript is the goldmark node kind of ^superscript^ spans.
var KindSuperscript = ast.NewNodeKind("Superscript")

// SuperscriptNode is an inline ^text^ span rendered as <sup>.
type SuperscriptNode struct {
	ast.BaseInline
}

// Dump implements ast.Node.
func (n *SuperscriptNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Kind implements ast.Node.
func (n *SuperscriptNode) Kind() ast.NodeKind {
	return KindSuperscript
}

type superscriptDelimiterProcessor struct{}

func (p *superscriptDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == '^'
}

func (p *superscriptDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *superscriptDelimiterProcessor) OnMatch(consumes int) ast.Node {
	return &SuperscriptNode{}
}

var defaultSuperscriptDelimiterProcessor = &superscriptDelimiterProcessor{}

type superscriptParser struct{}

// Trigger implements parser.InlineParser.
func (s *superscriptParser) Trigger() []byte {
	return []byte{'^'}
}

// Parse scans a single caret delimiter. Runs of carets are left as text.
func (s *superscriptParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 1, defaultSuperscriptDelimiterProcessor)
	if node == nil || node.OriginalLength != 1 || before == '^' {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

// CloseBlock implements parser.InlineParser.
func (s *superscriptParser) CloseBlock(parent ast.Node, pc parser.Context) {}

type superscriptHTMLRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *superscriptHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSuperscript, r.renderSuperscript)
}

func (r *superscriptHTMLRenderer) renderSuperscript(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<sup>")
	} else {
		_, _ = w.WriteString("</sup>")
	}
	return ast.WalkContinue, nil
}

type superscript struct{}

// Superscript is a goldmark extension rendering ^text^ as <sup>text</sup>.
var Superscript goldmark.Extender = &superscript{}

// Extend implements goldmark.Extender.
func (e *superscript) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&superscriptParser{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&superscriptHTMLRenderer{}, 500),
	))
}
