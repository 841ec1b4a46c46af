// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"errors"
	"os/exec"
	"strings"
	"syscall"

	"github.com/alnah/go-mdpreview/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBind returns hints for listener errors.
func ForBind(err error) string {
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		return format("address already in use; pick another port with --port")
	case errors.Is(err, syscall.EACCES):
		return format("ports below 1024 need elevated privileges; try --port 8081")
	}
	return ""
}

// ForWatchSetup returns hints for watcher registration errors.
// Live reload is disabled in that case, so the hint explains how to get it back.
func ForWatchSetup(err error) string {
	var hints []string

	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EMFILE) {
		hints = append(hints, "inotify watch limit reached; raise fs.inotify.max_user_watches")
	}
	if IsInContainer() {
		hints = append(hints, "files on bind mounts may not deliver change events inside containers")
	}
	if len(hints) == 0 {
		hints = append(hints, "check that the source directory is readable")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/mdpreview/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "mdpreview") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForThemeNotFound returns hints for unknown theme names.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForHighlightCommand returns hints when the external highlighter cannot start.
func ForHighlightCommand(err error) string {
	if errors.Is(err, exec.ErrNotFound) {
		return format("install the highlighter or remove highlight.command to use the built-in one")
	}
	return ""
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
