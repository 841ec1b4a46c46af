package pipeline

import (
	"context"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// ScriptInjector defines the contract for script injection into HTML.
type ScriptInjector interface {
	InjectScript(ctx context.Context, htmlContent, script string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized so it cannot close the style block.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}
	return injectHead(htmlContent, "<style>"+escapeClosingTags(cssContent)+"</style>")
}

// ScriptInjection injects JavaScript as a <script> block into HTML content.
type ScriptInjection struct{}

// InjectScript inserts a <script> block into <head>, so replacing the body
// never removes it. Placement follows InjectCSS.
func (s *ScriptInjection) InjectScript(ctx context.Context, htmlContent, script string) string {
	if script == "" || ctx.Err() != nil {
		return htmlContent
	}
	return injectHead(htmlContent, "<script>"+escapeClosingTags(script)+"</script>")
}

// injectHead inserts block before </head>, else after the <body> tag,
// else at the start.
func injectHead(htmlContent, block string) string {
	if idx := indexTagFold(htmlContent, "</head>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}

	if idx := indexTagFold(htmlContent, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + block + htmlContent[insertPos:]
		}
	}

	return block + htmlContent
}

// indexTagFold returns the byte offset in s of the first ASCII
// case-insensitive match of tag, or -1. Non-ASCII text before the tag
// does not shift the offset, unlike searching a lowercased copy.
func indexTagFold(s, tag string) int {
	n := len(tag)
	for i := 0; i+n <= len(s); i++ {
		if s[i] == '<' && equalFoldASCII(s[i:i+n], tag) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// escapeClosingTags rewrites "</" so raw text cannot end its element early.
func escapeClosingTags(s string) string {
	return strings.ReplaceAll(s, "</", `<\/`)
}

// Compile-time interface checks.
var (
	_ CSSInjector    = (*CSSInjection)(nil)
	_ ScriptInjector = (*ScriptInjection)(nil)
)
