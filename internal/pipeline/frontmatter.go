package pipeline

import (
	"strings"

	"github.com/alnah/go-mdpreview/internal/yamlutil"
)

// FrontMatter holds the front matter keys the preview uses.
// Other keys are ignored.
type FrontMatter struct {
	Title string `yaml:"title"`
}

// SplitFrontMatter separates a leading YAML front matter block from the
// markdown body. The block must open with "---" on the first line and close
// with "---" or "..."; otherwise the content is returned untouched with
// ok=false.
func SplitFrontMatter(content string) (meta, body string, ok bool) {
	content = strings.TrimPrefix(content, "\ufeff")

	first, rest, found := strings.Cut(content, "\n")
	if !found || strings.TrimSpace(strings.TrimSuffix(first, "\r")) != "---" {
		return "", content, false
	}

	// A thematic break followed by prose is not front matter.
	second, _, _ := strings.Cut(rest, "\n")
	if !strings.Contains(second, ":") {
		return "", content, false
	}

	offset := 0
	for offset <= len(rest) {
		line, next, more := strings.Cut(rest[offset:], "\n")
		trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if trimmed == "---" || trimmed == "..." {
			meta = rest[:offset]
			if more {
				return meta, next, true
			}
			return meta, "", true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}

	return "", content, false
}

// ParseFrontMatter decodes a front matter block. Malformed YAML yields an
// empty FrontMatter; the block is still stripped from the body.
func ParseFrontMatter(meta string) FrontMatter {
	var fm FrontMatter
	if strings.TrimSpace(meta) == "" {
		return fm
	}
	if err := yamlutil.Unmarshal([]byte(meta), &fm); err != nil {
		return FrontMatter{}
	}
	fm.Title = strings.TrimSpace(fm.Title)
	return fm
}
