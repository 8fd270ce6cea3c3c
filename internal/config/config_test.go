package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Particles != 5000 {
		t.Errorf("expected 5000 particles, got %d", cfg.Particles)
	}
	if cfg.Boundary != 500 {
		t.Errorf("expected boundary 500, got %f", cfg.Boundary)
	}
	if cfg.Dt != 0.1 {
		t.Errorf("expected dt 0.1, got %f", cfg.Dt)
	}
	if cfg.PollMs != 16 {
		t.Errorf("expected poll 16ms, got %d", cfg.PollMs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partsim.yaml")

	cfg := DefaultConfig()
	cfg.Particles = 123
	cfg.Seed = 42
	cfg.Dt = 0.05

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Particles != 123 || loaded.Seed != 42 || loaded.Dt != 0.05 {
		t.Errorf("roundtrip mismatch: %+v", loaded)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero particles", func(c *Config) { c.Particles = 0 }},
		{"negative boundary", func(c *Config) { c.Boundary = -1 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"zero poll", func(c *Config) { c.PollMs = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("classic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Particles != 5000 {
		t.Errorf("expected 5000 particles, got %d", cfg.Particles)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s should validate: %v", name, err)
		}
	}
}
