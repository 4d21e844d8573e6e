package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Scale.DefaultValue != 300 {
		t.Errorf("expected default scale 300, got %v", cfg.Scale.DefaultValue)
	}
	if len(cfg.Scale.AllowedValues) == 0 {
		t.Errorf("allowed scale values should not be empty")
	}
	if !cfg.IsAllowedScale(cfg.Scale.DefaultValue) {
		t.Errorf("default scale %v must be in the allowed set", cfg.Scale.DefaultValue)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Scale.DefaultValue != 300 {
		t.Errorf("expected defaults, got scale %v", cfg.Scale.DefaultValue)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.Scale.DefaultValue = 100
	cfg.Caption.Enabled = true
	cfg.Annotation.RingFractions = []float64{0.5, 1.0}

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Scale.DefaultValue != 100 {
		t.Errorf("expected scale 100, got %v", loaded.Scale.DefaultValue)
	}
	if !loaded.Caption.Enabled {
		t.Errorf("caption flag not preserved")
	}
	if len(loaded.Annotation.RingFractions) != 2 {
		t.Errorf("ring fractions not preserved: %v", loaded.Annotation.RingFractions)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("scale: [not: a: mapping"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("expected parse error for malformed YAML")
	}
}

func TestIsAllowedScale(t *testing.T) {
	cfg := Default()
	if cfg.IsAllowedScale(123) {
		t.Errorf("123 should not be an allowed denomination")
	}
	if !cfg.IsAllowedScale(50) {
		t.Errorf("50 should be allowed")
	}
}
