package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeAsset creates {base}/{dir}/{file} with content.
func writeAsset(t *testing.T, base, dir, file, content string) {
	t.Helper()

	full := filepath.Join(base, dir)
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatalf("failed to create %s dir: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(full, file), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", file, err)
	}
}

// ---------------------------------------------------------------------------
// TestNewFilesystemLoader - Base path validation
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if loader == nil {
			t.Fatal("NewFilesystemLoader() returned nil")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeAsset(t, tmpDir, ".", "file.txt", "test")

		_, err := NewFilesystemLoader(filepath.Join(tmpDir, "file.txt"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader_Load - Styles and scripts from disk
// ---------------------------------------------------------------------------

func TestFilesystemLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "styles", "sepia.css", "body { color: #5b4636; }")

	loader, err := NewFilesystemLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	got, err := loader.LoadStyle("sepia")
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if got != "body { color: #5b4636; }" {
		t.Errorf("LoadStyle() = %q", got)
	}

	if _, err := loader.LoadStyle("missing"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(missing) error = %v, want ErrStyleNotFound", err)
	}

	for _, name := range []string{"", "../secret", "..\\secret", "style.evil"} {
		if _, err := loader.LoadStyle(name); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle(%q) error = %v, want ErrInvalidAssetName", name, err)
		}
	}
}

func TestFilesystemLoader_LoadScript(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "scripts", "sse.js", "console.log('custom');")

	loader, err := NewFilesystemLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	got, err := loader.LoadScript("sse")
	if err != nil {
		t.Fatalf("LoadScript() error = %v", err)
	}
	if !strings.Contains(got, "custom") {
		t.Errorf("LoadScript() = %q", got)
	}

	if _, err := loader.LoadScript("websocket"); !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("LoadScript(websocket) error = %v, want ErrScriptNotFound", err)
	}
}

func TestFilesystemLoader_ListStyles(t *testing.T) {
	t.Parallel()

	t.Run("lists css files only", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeAsset(t, tmpDir, "styles", "zen.css", "")
		writeAsset(t, tmpDir, "styles", "amber.css", "")
		writeAsset(t, tmpDir, "styles", "README.md", "")

		loader, err := NewFilesystemLoader(tmpDir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}

		got := strings.Join(loader.ListStyles(), ",")
		if got != "amber,zen" {
			t.Errorf("ListStyles() = %q, want %q", got, "amber,zen")
		}
	})

	t.Run("missing styles directory", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if got := loader.ListStyles(); len(got) != 0 {
			t.Errorf("ListStyles() = %v, want empty", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader_PathContainment - Symlink escape
// ---------------------------------------------------------------------------

func TestFilesystemLoader_PathContainment(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "styles"), 0o755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}

	secretDir := t.TempDir()
	writeAsset(t, secretDir, ".", "secret.css", "secret content")

	if err := os.Symlink(filepath.Join(secretDir, "secret.css"), filepath.Join(tmpDir, "styles", "evil.css")); err != nil {
		t.Skipf("symlink creation not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	_, err = loader.LoadStyle("evil")
	if !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle() with symlink escape error = %v, want ErrPathTraversal", err)
	}
}
