package mdpreview

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdpreview/internal/assets"
)

// Theme names a page stylesheet. The built-in themes are ThemeLight and
// ThemeDark; an asset path may add more.
type Theme string

// Built-in themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Transport selects how live updates reach the browser.
type Transport string

// Live-update transports.
const (
	TransportSSE       Transport = "sse"
	TransportWebSocket Transport = "websocket"
)

// RenderConfig describes what to render. It is copied by NewRenderer and
// never changes afterwards.
type RenderConfig struct {
	Source     string    // markdown file, required
	Stylesheet string    // optional CSS file appended after the theme
	Theme      Theme     // optional; empty means no theme stylesheet
	TOC        bool      // fill the first .toc element (or the body) with a table of contents
	LiveReload bool      // inject the live-update script
	Transport  Transport // empty means TransportSSE
}

// Validate checks the configuration without touching the filesystem.
// Whether a theme name actually exists is checked by NewRenderer.
func (c *RenderConfig) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return ErrEmptySource
	}
	if c.Theme != "" {
		if err := assets.ValidateAssetName(string(c.Theme)); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTheme, c.Theme)
		}
	}
	switch c.Transport {
	case "", TransportSSE, TransportWebSocket:
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidTransport, c.Transport, TransportSSE, TransportWebSocket)
	}
	return nil
}

// transport returns the effective transport.
func (c *RenderConfig) transport() Transport {
	if c.Transport == "" {
		return TransportSSE
	}
	return c.Transport
}

// Result is one rendering of the source.
type Result struct {
	Page string // complete HTML document
	Body string // serialized children of <body>, the live-update payload
}
