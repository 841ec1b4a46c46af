package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter - Extension set and raw HTML
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()

	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "superscript",
			input: "E = mc^2^ and 2^10^",
			want:  []string{"mc<sup>2</sup>", "2<sup>10</sup>"},
		},
		{
			name:    "unclosed caret stays text",
			input:   "x^2 + y",
			want:    []string{"x^2 + y"},
			notWant: []string{"<sup>"},
		},
		{
			name:    "double caret stays text",
			input:   "a^^b^^",
			notWant: []string{"<sup>"},
		},
		{
			name:  "strikethrough",
			input: "~~gone~~",
			want:  []string{"<del>gone</del>"},
		},
		{
			name:  "table",
			input: "| a | b |\n|---|---|\n| 1 | 2 |\n",
			want:  []string{"<table>", "<td>1</td>"},
		},
		{
			name:  "autolink",
			input: "see https://example.com now",
			want:  []string{`<a href="https://example.com">https://example.com</a>`},
		},
		{
			name:  "task list",
			input: "- [x] done\n- [ ] todo\n",
			want:  []string{`type="checkbox"`, "checked"},
		},
		{
			name:  "raw HTML passes through",
			input: "<div class=\"toc\"></div>\n\n# Title\n",
			want:  []string{`<div class="toc"></div>`, "<h1>Title</h1>"},
		},
		{
			name:  "fenced code keeps language class",
			input: "```go\nx := 1\n```\n",
			want:  []string{`<pre><code class="language-go">`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got.Body, w) {
					t.Errorf("ToHTML() body missing %q:\n%s", w, got.Body)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got.Body, nw) {
					t.Errorf("ToHTML() body contains %q:\n%s", nw, got.Body)
				}
			}
		})
	}
}

func TestGoldmarkConverter_FrontMatterTitle(t *testing.T) {
	t.Parallel()

	got, err := NewGoldmarkConverter().ToHTML(context.Background(), "---\ntitle: Release notes\nauthor: x\n---\n# Heading\n")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if got.Title != "Release notes" {
		t.Errorf("Title = %q, want %q", got.Title, "Release notes")
	}
	if strings.Contains(got.Body, "author") {
		t.Errorf("front matter leaked into body: %s", got.Body)
	}
	if !strings.Contains(got.Body, "<h1>Heading</h1>") {
		t.Errorf("body missing heading: %s", got.Body)
	}
}

func TestGoldmarkConverter_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestWrapPage
// ---------------------------------------------------------------------------

func TestWrapPage(t *testing.T) {
	t.Parallel()

	page := WrapPage("A <b> & c", "<p>hi</p>")

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<meta charset="utf-8">`,
		"<title>A &lt;b&gt; &amp; c</title>",
		"<body>\n<p>hi</p>\n</body>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("WrapPage() missing %q:\n%s", want, page)
		}
	}
}
