// Package assets provides the page themes and live-reload scripts.
// Assets can be loaded from embedded files or custom filesystem paths.
package assets

// Built-in asset names.
const (
	// DefaultStyleName is the theme used when none is configured.
	DefaultStyleName = "light"

	// ScriptSSE reloads the page body from the server-sent events stream.
	ScriptSSE = "sse"

	// ScriptWebSocket reloads the page body from the websocket stream.
	ScriptWebSocket = "websocket"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS theme by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadScript loads a live-reload script by name using the default embedded loader.
// Returns ErrScriptNotFound if the script does not exist.
func LoadScript(name string) (string, error) {
	return defaultLoader.LoadScript(name)
}

// ListStyles returns the sorted names of the embedded themes.
func ListStyles() []string {
	return defaultLoader.ListStyles()
}
