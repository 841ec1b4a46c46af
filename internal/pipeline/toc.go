package pipeline

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TOCClass marks the element the table of contents is prepended to.
const TOCClass = "toc"

// TOCEntry is one linked heading.
type TOCEntry struct {
	Level    int          // 2..6
	AnchorID string       // ref-1, ref-2, ...
	Content  []*html.Node // deep copy of the heading children
}

// BuildTOC anchors every h2..h6 heading of doc and returns the nested
// table of contents list together with the collected entries. h1 is left
// alone. With no headings the list is an empty <ol>.
func BuildTOC(doc *html.Node) (*html.Node, []TOCEntry) {
	entries := collectHeadings(doc)
	return buildList(&tocCursor{entries: entries}, true), entries
}

// InsertTOC prepends list to the first element with class "toc", else to
// <body>, else to the document root.
func InsertTOC(doc, list *html.Node) {
	loc := findFirst(doc, func(n *html.Node) bool { return hasClass(n, TOCClass) })
	if loc == nil {
		loc = findFirst(doc, isElement(atom.Body))
	}
	if loc == nil {
		loc = doc
	}
	loc.InsertBefore(list, loc.FirstChild)
}

// collectHeadings assigns anchors in document order. The heading content is
// cloned before the anchor is prepended.
func collectHeadings(doc *html.Node) []TOCEntry {
	var entries []TOCEntry
	for _, h := range findAll(doc, func(n *html.Node) bool { return headingLevel(n) > 1 }) {
		id := fmt.Sprintf("ref-%d", len(entries)+1)

		var content []*html.Node
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			content = append(content, cloneNode(c))
		}
		entries = append(entries, TOCEntry{Level: headingLevel(h), AnchorID: id, Content: content})

		h.InsertBefore(newElement(atom.A, html.Attribute{Key: "name", Val: id}), h.FirstChild)
	}
	return entries
}

func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode {
		return 0
	}
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// tocCursor is a peekable forward cursor over the flat entries.
type tocCursor struct {
	entries []TOCEntry
	pos     int
}

func (c *tocCursor) peek() (TOCEntry, bool) {
	if c.pos >= len(c.entries) {
		return TOCEntry{}, false
	}
	return c.entries[c.pos], true
}

func (c *tocCursor) next() TOCEntry {
	e := c.entries[c.pos]
	c.pos++
	return e
}

// buildList consumes entries while their level does not drop below the
// level of the list's first item. A deeper entry starts a sublist attached
// to the current item, whatever the size of the jump, so 2 -> 4 nests once.
// Nested frames always have a strictly greater level, so recursion is at
// most five deep. The root frame never returns early: a shallower entry
// there continues the top-level list, so levels [3 2 3] give a, b(c)
// rather than stopping at b and dropping the remaining entries.
func buildList(c *tocCursor, root bool) *html.Node {
	ol := newElement(atom.Ol)

	first, ok := c.peek()
	if !ok {
		return ol
	}
	level := first.Level

	var item *html.Node
	for {
		e, ok := c.peek()
		if !ok {
			return ol
		}

		switch {
		case e.Level > level && item != nil:
			item.AppendChild(buildList(c, false))
		case e.Level < level && !root:
			return ol
		default:
			level = e.Level
			item = tocItem(c.next())
			ol.AppendChild(item)
		}
	}
}

func tocItem(e TOCEntry) *html.Node {
	link := newElement(atom.A, html.Attribute{Key: "href", Val: "#" + e.AnchorID})
	for _, n := range e.Content {
		link.AppendChild(cloneNode(n))
	}
	li := newElement(atom.Li)
	li.AppendChild(link)
	return li
}
