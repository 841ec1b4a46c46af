// Package mdpreview renders a Markdown file as a styled HTML page for live
// preview in a browser.
//
// # Quick Start
//
// Create a renderer and render the source:
//
//	r, err := mdpreview.NewRenderer(mdpreview.RenderConfig{
//	    Source: "README.md",
//	    Theme:  mdpreview.ThemeDark,
//	    TOC:    true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := r.Render(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.WriteString(res.Page)
//
// Result.Page is the full document and Result.Body the serialized children
// of <body>. Live-update transports send Body so the browser can swap the
// content without reloading the page.
//
// # Rendering Pipeline
//
// Each Render call runs these stages on a fresh document:
//
//  1. Markdown to HTML via goldmark (tables, strikethrough, autolinks,
//     task lists, ^superscript^, raw HTML), front matter title extraction
//  2. Local images inlined as base64 data URIs
//  3. Fenced code blocks highlighted (chroma by default, or an external command)
//  4. Headings h2-h6 anchored as ref-1, ref-2, ... and listed in a nested
//     table of contents placed in the first .toc element, if enabled
//  5. Theme, highlight and user stylesheets injected, then the live-reload
//     script
//
// An unreadable source renders a page explaining the error instead of
// failing, so a preview survives the file being briefly absent.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	hl, _ := mdpreview.NewCommandHighlighter(
//	    []string{"pygmentize", "-l", "{lang}", "-f", "html"}, 5*time.Second)
//	r, err := mdpreview.NewRenderer(cfg,
//	    mdpreview.WithAssetPath("/path/to/assets"),
//	    mdpreview.WithHighlighter(hl),
//	)
//
// # Custom Assets
//
// Override built-in themes and live-reload scripts using an asset directory:
//
//	assets/
//	├── styles/
//	│   └── sepia.css
//	└── scripts/
//	    └── sse.js
package mdpreview
