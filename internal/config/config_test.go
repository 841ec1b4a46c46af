package config

// Notes:
// - Tests that resolve config names change the working directory or the
//   user config directory; they use t.Chdir/t.Setenv and cannot run in parallel.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Addr() != "127.0.0.1:8081" {
		t.Errorf("Addr() = %q, want %q", cfg.Addr(), "127.0.0.1:8081")
	}
	if !cfg.LiveReload.Enabled {
		t.Error("LiveReload.Enabled = false, want true")
	}
	if cfg.LiveReload.Transport != "sse" {
		t.Errorf("LiveReload.Transport = %q, want sse", cfg.LiveReload.Transport)
	}
	if cfg.Debounce() != 100*time.Millisecond {
		t.Errorf("Debounce() = %v, want 100ms", cfg.Debounce())
	}
	if !cfg.Highlight.Enabled {
		t.Error("Highlight.Enabled = false, want true")
	}
	if cfg.Render.Theme != "" || cfg.Render.TOC {
		t.Errorf("Render = %+v, want zero", cfg.Render)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Field checks
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"websocket transport", func(c *Config) { c.LiveReload.Transport = "websocket" }, nil},
		{"uppercase transport", func(c *Config) { c.LiveReload.Transport = "SSE" }, nil},
		{"zero debounce", func(c *Config) { c.LiveReload.Debounce = "0s" }, nil},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, nil},
		{"unknown transport", func(c *Config) { c.LiveReload.Transport = "polling" }, ErrInvalidValue},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, ErrInvalidValue},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, ErrInvalidValue},
		{"bad debounce", func(c *Config) { c.LiveReload.Debounce = "soon" }, ErrInvalidValue},
		{"negative debounce", func(c *Config) { c.LiveReload.Debounce = "-1s" }, ErrInvalidValue},
		{"bad timeout", func(c *Config) { c.Highlight.Timeout = "5" }, ErrInvalidValue},
		{"long theme", func(c *Config) { c.Render.Theme = strings.Repeat("a", MaxNameLength+1) }, ErrFieldTooLong},
		{"long host", func(c *Config) { c.Server.Host = strings.Repeat("h", MaxHostLength+1) }, ErrFieldTooLong},
		{"too many command args", func(c *Config) { c.Highlight.Command = make([]string, MaxCommandArgs+1) }, ErrFieldTooLong},
		{"long command arg", func(c *Config) { c.Highlight.Command = []string{strings.Repeat("x", MaxArgLength+1)} }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDurationsFallBackToDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	if cfg.Debounce() != DefaultDebounce {
		t.Errorf("Debounce() = %v, want %v", cfg.Debounce(), DefaultDebounce)
	}
	if cfg.HighlightTimeout() != DefaultHighlightTimeout {
		t.Errorf("HighlightTimeout() = %v, want %v", cfg.HighlightTimeout(), DefaultHighlightTimeout)
	}
	if cfg.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q, want %q", cfg.Addr(), "127.0.0.1:0")
	}

	cfg.LiveReload.Debounce = "250ms"
	cfg.Highlight.Timeout = "2s"
	if cfg.Debounce() != 250*time.Millisecond {
		t.Errorf("Debounce() = %v, want 250ms", cfg.Debounce())
	}
	if cfg.HighlightTimeout() != 2*time.Second {
		t.Errorf("HighlightTimeout() = %v, want 2s", cfg.HighlightTimeout())
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File paths
// ---------------------------------------------------------------------------

func TestLoadConfig_Path(t *testing.T) {
	t.Parallel()

	t.Run("overlays file on defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "preview.yaml", `
server:
  port: 9000
render:
  theme: dark
  toc: true
liveReload:
  transport: websocket
  debounce: 250ms
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Port != 9000 || cfg.Server.Host != DefaultHost {
			t.Errorf("Server = %+v, want port 9000 on default host", cfg.Server)
		}
		if cfg.Render.Theme != "dark" || !cfg.Render.TOC {
			t.Errorf("Render = %+v", cfg.Render)
		}
		if cfg.LiveReload.Transport != "websocket" || !cfg.LiveReload.Enabled {
			t.Errorf("LiveReload = %+v", cfg.LiveReload)
		}
		if cfg.Debounce() != 250*time.Millisecond {
			t.Errorf("Debounce() = %v, want 250ms", cfg.Debounce())
		}
		if !cfg.Highlight.Enabled {
			t.Error("Highlight.Enabled lost its default")
		}
	})

	t.Run("explicit false overrides default", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "static.yaml", "liveReload:\n  enabled: false\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.LiveReload.Enabled {
			t.Error("LiveReload.Enabled = true, want false")
		}
	})

	t.Run("unknown key is a parse error", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "typo.yaml", "render:\n  thme: dark\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "liveReload:\n  transport: carrier-pigeon\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig() error = %v, want ErrEmptyConfigName", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig_Name - Name resolution (not parallel: cwd and env)
// ---------------------------------------------------------------------------

func TestLoadConfig_NameInCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "work.yml", "render:\n  theme: fromyml\n")
	writeConfig(t, dir, "work.yaml", "render:\n  theme: fromyaml\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("work")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Render.Theme != "fromyaml" {
		t.Errorf("Render.Theme = %q, want %q (should prefer .yaml)", cfg.Render.Theme, "fromyaml")
	}
}

func TestLoadConfig_NameInUserConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("AppData", filepath.Join(home, "AppData"))
	t.Chdir(t.TempDir())

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		t.Skip("cannot get user config dir")
	}
	appDir := filepath.Join(userConfigDir, ConfigDirName)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatalf("setup mkdir: %v", err)
	}
	writeConfig(t, appDir, "shared.yaml", "server:\n  port: 9100\n")

	cfg, err := LoadConfig("shared")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
}

func TestLoadConfig_NameNotFound(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig("nonexistent")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "nonexistent.yaml") {
		t.Errorf("error %q does not list the searched paths", err)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("preview")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "preview.yaml" || paths[1] != "preview.yml" {
		t.Errorf("SearchPaths() local candidates = %v", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, ConfigDirName) {
			t.Errorf("user path %q not under %s", p, ConfigDirName)
		}
	}
}
