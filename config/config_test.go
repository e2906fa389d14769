package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lc3term.toml")
	data := `
frame_rate = 30
image = "2048.obj"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FrameRate != 30 {
		t.Fatalf("frame_rate = %d, want 30", cfg.FrameRate)
	}
	if cfg.Image != "2048.obj" {
		t.Fatalf("image = %q", cfg.Image)
	}
	if cfg.StepBudget != Default().StepBudget {
		t.Fatalf("step_budget = %d, want default", cfg.StepBudget)
	}
	if cfg.FrameInterval() != time.Second/30 {
		t.Fatalf("frame interval = %v", cfg.FrameInterval())
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("missing file did not error")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lc3term.toml")
	if err := os.WriteFile(path, []byte("frame_rate = -5\nstep_budget = 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FrameRate != Default().FrameRate || cfg.StepBudget != Default().StepBudget {
		t.Fatalf("invalid values not replaced with defaults: %+v", cfg)
	}
}
