package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/render"
)

const (
	DefaultBackend = "gui"
	DefaultWidth   = 960
	DefaultHeight  = 640
	DefaultTheme   = "ice"
	DefaultLevel   = "info"
	DefaultTitle   = "glowpend"
)

// Backends lists every renderer the CLI can start.
var Backends = []string{"gui", "ebiten", "tui"}

type Config struct {
	Backend     string    `yaml:"backend"`
	Title       string    `yaml:"title"`
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	Seed        int64     `yaml:"seed"`
	Theme       string    `yaml:"theme"`
	TrailSlider float64   `yaml:"trail_slider"`
	TargetFPS   int       `yaml:"target_fps"`
	Log         LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
	MaxSizeMB   int    `yaml:"max_size_mb"`
	MaxBackups  int    `yaml:"max_backups"`
	MaxAgeDays  int    `yaml:"max_age_days"`
	Compress    bool   `yaml:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:     DefaultBackend,
		Title:       DefaultTitle,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Theme:       DefaultTheme,
		TrailSlider: render.SliderDefault,
		TargetFPS:   60,
		Log: LogConfig{
			Level:      DefaultLevel,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values no backend can start with.
func (c *Config) Validate() error {
	if !knownBackend(c.Backend) {
		return fmt.Errorf("backend %q: %w", c.Backend, dynamo.ErrUnknownBackend)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window %dx%d: %w", c.Width, c.Height, dynamo.ErrInvalidConfig)
	}
	if c.TrailSlider < render.SliderMin || c.TrailSlider > render.SliderMax {
		return fmt.Errorf("trail_slider %.1f outside [%.0f, %.0f]: %w", c.TrailSlider, render.SliderMin, render.SliderMax, dynamo.ErrInvalidConfig)
	}
	if _, ok := render.Palettes[c.Theme]; !ok {
		return fmt.Errorf("theme %q: %w", c.Theme, dynamo.ErrInvalidConfig)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation %d MB, %d backups, %d days: %w", c.Log.MaxSizeMB, c.Log.MaxBackups, c.Log.MaxAgeDays, dynamo.ErrInvalidConfig)
	}
	if c.TargetFPS < 0 {
		return fmt.Errorf("target_fps %d: %w", c.TargetFPS, dynamo.ErrInvalidConfig)
	}
	return nil
}

// ResolveSeed returns the configured seed, or a time-based one when unset.
func (c *Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func (c *Config) Palette() render.Palette {
	return render.GetPalette(c.Theme)
}

func knownBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
}
