package pipeline

import (
	"encoding/base64"
	"net/url"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-mdpreview/internal/fileutil"
)

// MaxImageSize caps a single inlined image at 16MB.
const MaxImageSize = 16 << 20

// InlineImages replaces the src of every img referring to a readable local
// file with a data URI. Relative paths resolve against baseDir. Unreadable,
// oversized or non-regular files leave src untouched. Returns the number of
// images inlined.
func InlineImages(doc *html.Node, baseDir string) int {
	inlined := 0
	for _, img := range findAll(doc, isElement(atom.Img)) {
		src, ok := getAttr(img, "src")
		if !ok || !fileutil.IsLocalRef(src) {
			continue
		}
		if uri, ok := dataURI(src, baseDir); ok {
			setAttr(img, "src", uri)
			inlined++
		}
	}
	return inlined
}

// dataURI reads the file behind src. The percent-decoded form is tried
// first since goldmark escapes spaces in link destinations.
func dataURI(src, baseDir string) (string, bool) {
	candidates := []string{src}
	if unescaped, err := url.PathUnescape(src); err == nil && unescaped != src {
		candidates = []string{unescaped, src}
	}

	for _, ref := range candidates {
		path := fileutil.ResolveRef(ref, baseDir)
		data, err := fileutil.ReadFileLimited(path, MaxImageSize)
		if err != nil {
			continue
		}
		return "data:" + fileutil.MIMEType(path) + ";base64," + base64.StdEncoding.EncodeToString(data), true
	}
	return "", false
}
