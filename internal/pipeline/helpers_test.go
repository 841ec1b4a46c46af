package pipeline

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// parseBody parses fragment as the body of a minimal page.
func parseBody(t *testing.T, fragment string) *html.Node {
	t.Helper()

	doc, err := ParseDocument(WrapPage("test", fragment))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	return doc
}

// renderBody serializes the body of doc, trimmed of the page template's
// surrounding newlines.
func renderBody(t *testing.T, doc *html.Node) string {
	t.Helper()

	_, body, err := RenderDocument(doc)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	return strings.TrimSpace(body)
}

// renderNode serializes a single node.
func renderNode(t *testing.T, n *html.Node) string {
	t.Helper()

	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		t.Fatalf("html.Render() error = %v", err)
	}
	return sb.String()
}
