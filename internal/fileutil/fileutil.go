// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrFileTooLarge = errors.New("file exceeds size limit")
	ErrNotRegular   = errors.New("not a regular file")
)

// DefaultMIMEType is used when the extension is unknown.
const DefaultMIMEType = "application/octet-stream"

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "dark" -> false (theme name)
//   - "./custom.css" -> true (relative path)
//   - "/absolute/path.css" -> true (absolute)
//   - "C:\windows\path.css" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an http(s) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IsLocalRef reports whether an attribute value such as img[src] refers to a
// file on the local disk. URLs, data URIs, protocol-relative references and
// fragments are not local.
func IsLocalRef(ref string) bool {
	if ref == "" {
		return false
	}
	lower := strings.ToLower(ref)
	switch {
	case IsURL(lower),
		strings.HasPrefix(lower, "data:"),
		strings.HasPrefix(lower, "file://"),
		strings.HasPrefix(lower, "mailto:"),
		strings.HasPrefix(ref, "//"),
		strings.HasPrefix(ref, "#"):
		return false
	}
	return true
}

// ResolveRef joins a relative reference onto baseDir. Absolute references
// and an empty baseDir leave ref unchanged.
func ResolveRef(ref, baseDir string) string {
	path := filepath.FromSlash(ref)
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ReadFileLimited reads a regular file, refusing files larger than limit bytes.
// A limit <= 0 disables the check.
func ReadFileLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- preview reads user-referenced local files
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	if limit > 0 && info.Size() > limit {
		return nil, fmt.Errorf("%w: %s (%d bytes, max %d)", ErrFileTooLarge, path, info.Size(), limit)
	}

	return io.ReadAll(f)
}

// MIMEType infers a media type from the file extension, without parameters.
// Unknown extensions return DefaultMIMEType.
func MIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return DefaultMIMEType
	}
	typ := mime.TypeByExtension(ext)
	if typ == "" {
		return DefaultMIMEType
	}
	mediaType, _, err := mime.ParseMediaType(typ)
	if err != nil {
		return DefaultMIMEType
	}
	return mediaType
}
