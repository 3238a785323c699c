package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/glowpend/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend != "gui" {
		t.Errorf("expected backend gui, got %s", cfg.Backend)
	}
	if cfg.TrailSlider != 14 {
		t.Errorf("expected trail slider 14, got %f", cfg.TrailSlider)
	}
	if cfg.Log.MaxSizeMB != 10 || cfg.Log.MaxBackups != 3 {
		t.Errorf("expected log rotation 10 MB x 3, got %d MB x %d", cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glowpend.yaml")
	data := []byte("backend: tui\ntheme: ember\ntrail_slider: 4\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Backend != "tui" || cfg.Theme != "ember" || cfg.TrailSlider != 4 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Width != DefaultWidth {
		t.Errorf("expected default width to survive, got %d", cfg.Width)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 42
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"unknown backend", func(c *Config) { c.Backend = "vulkan" }, dynamo.ErrUnknownBackend},
		{"zero width", func(c *Config) { c.Width = 0 }, dynamo.ErrInvalidConfig},
		{"slider too high", func(c *Config) { c.TrailSlider = 21 }, dynamo.ErrInvalidConfig},
		{"slider negative", func(c *Config) { c.TrailSlider = -1 }, dynamo.ErrInvalidConfig},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }, dynamo.ErrInvalidConfig},
		{"negative log backups", func(c *Config) { c.Log.MaxBackups = -1 }, dynamo.ErrInvalidConfig},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("backend: vulkan\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestResolveSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	if cfg.ResolveSeed() != 7 {
		t.Error("expected configured seed")
	}
	cfg.Seed = 0
	if cfg.ResolveSeed() == 0 {
		t.Error("expected a generated seed")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.ApplyPreset("sparse") {
		t.Fatal("expected sparse preset")
	}
	if cfg.Theme != "mono" || cfg.TrailSlider != 2 {
		t.Errorf("unexpected config after preset: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	before := *cfg
	if cfg.ApplyPreset("nonexistent") {
		t.Error("expected false for unknown preset")
	}
	if *cfg != before {
		t.Error("unknown preset must not change config")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) || names[0] != "calm" {
		t.Errorf("unexpected presets %v", names)
	}
}
