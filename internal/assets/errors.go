package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound means no theme stylesheet has the requested name.
	ErrStyleNotFound = errors.New("style not found")

	// ErrScriptNotFound means no live-reload script exists for the transport.
	ErrScriptNotFound = errors.New("script not found")

	// ErrInvalidAssetName is returned for names with separators or dots.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath means --asset-path is missing or not a readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal is returned when a resolved asset escapes the base
	// directory, e.g. through a symlink.
	ErrPathTraversal = errors.New("path traversal detected")
)
