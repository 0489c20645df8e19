package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Params() != cloth.DefaultParams() {
		t.Errorf("default params mismatch: %+v", cfg.Params())
	}
	if cfg.Space() != (cloth.Canvas{Width: 500, Height: 300}) {
		t.Errorf("unexpected canvas %+v", cfg.Space())
	}
}

func TestParsePartialDocument(t *testing.T) {
	doc := []byte(`
cloth:
  physics_accuracy: 5
  tear_distance: 40
run:
  ticks: 10
`)
	cfg, err := Parse(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p := cfg.Params()
	if p.Accuracy != 5 || p.TearDistance != 40 {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.Gravity != 1200 || p.Width != 40 {
		t.Errorf("defaults lost: %+v", p)
	}
	if cfg.Run.Ticks != 10 || cfg.Run.FPS != DefaultFPS {
		t.Errorf("unexpected run section %+v", cfg.Run)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"negative spacing", "cloth:\n  spacing: -1\n"},
		{"zero accuracy", "cloth:\n  physics_accuracy: 0\n"},
		{"tiny canvas", "canvas:\n  width: 1\n"},
		{"negative fps", "run:\n  fps: -5\n"},
		{"bad action", "script:\n  - tick: 1\n    action: wiggle\n"},
		{"bad button", "script:\n  - tick: 1\n    action: press\n    button: thumb\n"},
		{"malformed", "cloth: [1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloth.yaml")

	cfg := GetPreset("slash")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not written: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Params() != cfg.Params() {
		t.Errorf("params differ after reload")
	}
	if len(loaded.Script) != len(cfg.Script) {
		t.Errorf("expected %d script events, got %d", len(cfg.Script), len(loaded.Script))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEvents(t *testing.T) {
	cfg := GetPreset("slash")
	events, err := cfg.Events()
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}
	if events[0].Action != sim.ActionPress || events[0].Button != cloth.ButtonOther {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[4].Action != sim.ActionRelease {
		t.Errorf("unexpected last event %+v", events[4])
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("restart")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Cloth.PhysicsAccuracy != 4 || cfg.Cloth.Spacing != 5 || cfg.Cloth.TearDistance != 50 {
		t.Errorf("unexpected restart tuning: %+v", cfg.Cloth)
	}

	cfg.Cloth.Spacing = 99
	if GetPreset("restart").Cloth.Spacing != 5 {
		t.Error("GetPreset returned a shared config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d names, got %d", len(Presets), len(names))
	}
	for i, name := range names {
		if i > 0 && names[i-1] > name {
			t.Errorf("presets not sorted: %v", names)
		}
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
