package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "styles", "dark.css", "body { background: black; }")
	writeAsset(t, tmpDir, "styles", "sepia.css", "body { background: wheat; }")

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom overrides embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("dark")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != "body { background: black; }" {
			t.Errorf("LoadStyle(dark) = %q, want custom content", got)
		}
	})

	t.Run("falls back to embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("light")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if !strings.Contains(got, "color-scheme: light") {
			t.Error("LoadStyle(light) did not return the embedded theme")
		}
	})

	t.Run("scripts fall back to embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadScript(ScriptSSE)
		if err != nil {
			t.Fatalf("LoadScript() error = %v", err)
		}
		if !strings.Contains(got, "EventSource") {
			t.Error("LoadScript(sse) did not return the embedded script")
		}
	})

	t.Run("not found anywhere", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("nonexistent")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("lists union of styles", func(t *testing.T) {
		t.Parallel()

		got := strings.Join(resolver.ListStyles(), ",")
		if got != "dark,light,sepia" {
			t.Errorf("ListStyles() = %q, want %q", got, "dark,light,sepia")
		}
	})
}

func TestAssetResolver_NoFallbackOnReadError(t *testing.T) {
	t.Parallel()

	if os.Getuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "styles", "dark.css", "body {}")
	if err := os.Chmod(filepath.Join(tmpDir, "styles", "dark.css"), 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	_, err = resolver.LoadStyle("dark")
	if !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadStyle() error = %v, want ErrAssetRead", err)
	}
}
