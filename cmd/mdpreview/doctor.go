package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/highlight"
	"github.com/alnah/go-mdpreview/internal/watcher"
)

// minInotifyWatches is the max_user_watches value below which editors
// and other watchers commonly exhaust the limit.
const minInotifyWatches = 8192

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Watch     watchInfo     `json:"watch"`
	Server    serverInfo    `json:"server"`
	Highlight highlightInfo `json:"highlight"`
	Themes    []string      `json:"themes"`
	Env       envInfo       `json:"environment"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// watchInfo holds file watching results.
type watchInfo struct {
	Supported  bool `json:"supported"`
	MaxWatches int  `json:"max_user_watches,omitempty"` // Linux only
}

// serverInfo holds listen address results.
type serverInfo struct {
	Addr      string `json:"addr"`
	Available bool   `json:"available"`
}

// highlightInfo holds highlighter detection results.
type highlightInfo struct {
	Enabled bool   `json:"enabled"`
	Backend string `json:"backend,omitempty"` // "chroma" or the command name
	Style   string `json:"style,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	f := &cliFlags{fs: fs}
	jsonOutput := fs.Bool("json", false, "print results as JSON")
	fs.StringVarP(&f.common.config, "config", "c", "", "config file name or path")
	fs.SetOutput(env.Stderr)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ExitSuccess
		}
		return ExitUsage
	}
	f.common.quiet = *jsonOutput

	result := &doctorResult{Status: "ready"}
	cfg, err := loadConfig(f, env)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		cfg = config.DefaultConfig()
	}
	runDoctor(cfg, result)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks against cfg.
func runDoctor(cfg *config.Config, result *doctorResult) {
	result.Env.OS = runtime.GOOS
	result.Env.Arch = runtime.GOARCH

	checkWatch(result)
	checkServer(cfg, result)
	checkHighlight(cfg, result)
	checkThemes(cfg, result)
	checkEnvironment(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
}

// checkWatch sets up a watcher on a scratch file.
func checkWatch(result *doctorResult) {
	dir, err := os.MkdirTemp("", "mdpreview-doctor-")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "probe.md")
	if err := os.WriteFile(path, []byte("# probe\n"), 0600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", dir))
		return
	}

	w, err := watcher.New(path)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("File watching unavailable, live reload will be disabled: %v", err))
	} else {
		_ = w.Close()
		result.Watch.Supported = true
	}

	if runtime.GOOS != "linux" {
		return
	}
	n, ok := readInotifyLimit("/proc/sys/fs/inotify/max_user_watches")
	if !ok {
		return
	}
	result.Watch.MaxWatches = n
	if n < minInotifyWatches {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("fs.inotify.max_user_watches is %d; raise it with: sysctl fs.inotify.max_user_watches=524288", n))
	}
}

// readInotifyLimit parses a single integer from a procfs file.
func readInotifyLimit(path string) (int, bool) {
	data, err := os.ReadFile(path) // #nosec G304 -- fixed procfs path
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// checkServer verifies the configured address can be bound.
func checkServer(cfg *config.Config, result *doctorResult) {
	result.Server.Addr = cfg.Addr()
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Cannot listen on %s: %v", cfg.Addr(), err))
		return
	}
	_ = ln.Close()
	result.Server.Available = true
}

// checkHighlight resolves the configured highlighter.
func checkHighlight(cfg *config.Config, result *doctorResult) {
	if !cfg.Highlight.Enabled {
		return
	}

	if len(cfg.Highlight.Command) > 0 {
		cmd, err := highlight.NewCommand(cfg.Highlight.Command, cfg.HighlightTimeout())
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Highlight command: %v", err))
			return
		}
		if err := cmd.Check(); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Highlight command %q not found, highlighting will be disabled", cmd.Name()))
			return
		}
		result.Highlight.Enabled = true
		result.Highlight.Backend = cmd.Name()
		return
	}

	style := cfg.Highlight.Style
	if style == "" {
		style = highlight.StyleForTheme(cfg.Render.Theme)
	}
	if _, err := highlight.NewChroma(style); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Highlight style: %v", err))
		return
	}
	result.Highlight.Enabled = true
	result.Highlight.Backend = "chroma"
	result.Highlight.Style = style
}

// checkThemes lists themes and verifies the configured one exists.
func checkThemes(cfg *config.Config, result *doctorResult) {
	names, err := mdpreview.Themes(cfg.Render.AssetPath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Themes: %v", err))
		return
	}
	result.Themes = names

	if cfg.Render.Theme != "" && !slices.Contains(names, cfg.Render.Theme) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Theme %q not found (available: %s)", cfg.Render.Theme, strings.Join(names, ", ")))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Loopback inside a container is not reachable from the host browser
	if result.Env.Container && isLoopback(result.Server.Addr) {
		result.Warnings = append(result.Warnings,
			"Container detected but listening on loopback. Use --host 0.0.0.0 to reach the preview from the host")
	}
}

// isLoopback reports whether addr's host part is a loopback address.
func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("MDPREVIEW_CONTAINER") == "1" {
		return true, "MDPREVIEW_CONTAINER=1"
	}
	// Docker
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdpreview doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "File Watching")
	if r.Watch.Supported {
		fmt.Fprintln(w, "  [OK] Supported")
	} else {
		fmt.Fprintln(w, "  [WARN] Unavailable")
	}
	if r.Watch.MaxWatches > 0 {
		fmt.Fprintf(w, "  [OK] max_user_watches: %d\n", r.Watch.MaxWatches)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Server")
	if r.Server.Available {
		fmt.Fprintf(w, "  [OK] %s: available\n", r.Server.Addr)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s: unavailable\n", r.Server.Addr)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Highlighting")
	switch {
	case !r.Highlight.Enabled:
		fmt.Fprintln(w, "  [OK] Disabled")
	case r.Highlight.Style != "":
		fmt.Fprintf(w, "  [OK] %s (%s)\n", r.Highlight.Backend, r.Highlight.Style)
	default:
		fmt.Fprintf(w, "  [OK] %s\n", r.Highlight.Backend)
	}
	fmt.Fprintln(w)

	if len(r.Themes) > 0 {
		fmt.Fprintln(w, "Themes")
		fmt.Fprintf(w, "  [OK] %s\n", strings.Join(r.Themes, ", "))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to preview")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
