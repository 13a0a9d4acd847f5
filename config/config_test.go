package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLoadsEmbeddedBaseline(t *testing.T) {
	cfg := Default()
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Fatalf("window size = %dx%d, want 1280x720", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.FixedStep.MaxStepsPerFrame != 5 {
		t.Fatalf("max steps per frame = %d, want 5", cfg.FixedStep.MaxStepsPerFrame)
	}
	if cfg.Renderer.MaxSpritesPerFrame != 8192 {
		t.Fatalf("max sprites per frame = %d, want 8192", cfg.Renderer.MaxSpritesPerFrame)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Window.TargetFPS != 60 {
		t.Fatalf("target fps = %d, want 60", cfg.Window.TargetFPS)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	body := "window:\n  width: 1920\n  height: 1080\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Fatalf("window size = %dx%d, want 1920x1080", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.TargetFPS != 60 {
		t.Fatalf("overriding width should not clobber target_fps default, got %d", cfg.Window.TargetFPS)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Fatal("expected error for missing override file")
	}
}
