package config

import "sort"

// Preset overrides the look of a run: theme and trail length.
type Preset struct {
	Theme       string
	TrailSlider float64
}

var Presets = map[string]Preset{
	"calm":   {Theme: "ice", TrailSlider: 8},
	"dense":  {Theme: "ice", TrailSlider: 20},
	"sparse": {Theme: "mono", TrailSlider: 2},
	"ember":  {Theme: "ember", TrailSlider: 14},
}

// ApplyPreset copies the named preset onto c. It returns false for unknown
// names and leaves c untouched.
func (c *Config) ApplyPreset(name string) bool {
	p, ok := Presets[name]
	if !ok {
		return false
	}
	c.Theme = p.Theme
	c.TrailSlider = p.TrailSlider
	return true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for n := range Presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
