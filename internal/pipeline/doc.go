// Package pipeline turns markdown into the preview page.
//
// The stages, in order:
//   - Front matter stripping (the title becomes the page <title>)
//   - Markdown to HTML conversion via Goldmark
//   - DOM post-processing on a golang.org/x/net/html tree: image inlining,
//     code block highlight dispatch, heading anchors and table of contents
//   - Serialization into the full page and the body payload
//   - CSS and live-reload script injection into <head>
//
// A parsed document is owned by the render call that created it and is
// discarded after serialization.
package pipeline
