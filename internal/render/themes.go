package render

import "sort"

// Stroke is one arm pass: a width and a color.
type Stroke struct {
	Width float64
	Color Color
}

// Node is a joint marker.
type Node struct {
	Radius float64
	Color  Color
}

// Palette holds every color the scene uses.
type Palette struct {
	Name string

	AmbientInner Color
	AmbientOuter Color
	AmbientR0    float64
	AmbientR1    float64

	TrailHue      float64
	TrailHueSwing float64
	TrailSat      float64
	TrailLight    float64

	Halos [3]Stroke
	Cores [3]Stroke
	Nodes [4]Node

	Text   Color
	Muted  Color
	Button Color
	Accent Color
}

var (
	PaletteIce = Palette{
		Name:          "ice",
		AmbientInner:  RGBA(40, 100, 200, 0.04),
		AmbientOuter:  RGBA(0, 0, 0, 0),
		AmbientR0:     10,
		AmbientR1:     280,
		TrailHue:      200,
		TrailHueSwing: 40,
		TrailSat:      1,
		TrailLight:    0.6,
		Halos: [3]Stroke{
			{6, RGBA(100, 180, 255, 0.18)},
			{4, RGBA(120, 200, 255, 0.14)},
			{3, RGBA(160, 220, 255, 0.10)},
		},
		Cores: [3]Stroke{
			{1.3, RGBA(110, 220, 255, 0.9)},
			{1.1, RGBA(150, 210, 255, 0.9)},
			{1.0, RGBA(200, 240, 255, 0.95)},
		},
		Nodes: [4]Node{
			{4, RGBA(120, 200, 255, 0.6)},
			{5, RGBA(130, 220, 255, 0.8)},
			{5, RGBA(190, 240, 255, 0.95)},
			{4, RGBA(255, 255, 255, 1)},
		},
		Text:   RGBA(200, 225, 255, 0.9),
		Muted:  RGBA(110, 130, 160, 0.8),
		Button: RGBA(30, 50, 80, 0.85),
		Accent: RGBA(110, 220, 255, 0.9),
	}

	PaletteEmber = Palette{
		Name:          "ember",
		AmbientInner:  RGBA(200, 80, 30, 0.05),
		AmbientOuter:  RGBA(0, 0, 0, 0),
		AmbientR0:     10,
		AmbientR1:     280,
		TrailHue:      20,
		TrailHueSwing: 25,
		TrailSat:      1,
		TrailLight:    0.55,
		Halos: [3]Stroke{
			{6, RGBA(255, 140, 60, 0.18)},
			{4, RGBA(255, 160, 80, 0.14)},
			{3, RGBA(255, 200, 120, 0.10)},
		},
		Cores: [3]Stroke{
			{1.3, RGBA(255, 170, 90, 0.9)},
			{1.1, RGBA(255, 190, 120, 0.9)},
			{1.0, RGBA(255, 225, 180, 0.95)},
		},
		Nodes: [4]Node{
			{4, RGBA(255, 150, 70, 0.6)},
			{5, RGBA(255, 170, 90, 0.8)},
			{5, RGBA(255, 215, 160, 0.95)},
			{4, RGBA(255, 255, 255, 1)},
		},
		Text:   RGBA(255, 225, 200, 0.9),
		Muted:  RGBA(160, 120, 100, 0.8),
		Button: RGBA(80, 40, 25, 0.85),
		Accent: RGBA(255, 170, 90, 0.9),
	}

	PaletteMono = Palette{
		Name:          "mono",
		AmbientInner:  RGBA(180, 180, 180, 0.03),
		AmbientOuter:  RGBA(0, 0, 0, 0),
		AmbientR0:     10,
		AmbientR1:     280,
		TrailHue:      0,
		TrailHueSwing: 0,
		TrailSat:      0,
		TrailLight:    0.75,
		Halos: [3]Stroke{
			{6, RGBA(200, 200, 200, 0.14)},
			{4, RGBA(210, 210, 210, 0.12)},
			{3, RGBA(230, 230, 230, 0.10)},
		},
		Cores: [3]Stroke{
			{1.3, RGBA(220, 220, 220, 0.9)},
			{1.1, RGBA(235, 235, 235, 0.9)},
			{1.0, RGBA(250, 250, 250, 0.95)},
		},
		Nodes: [4]Node{
			{4, RGBA(180, 180, 180, 0.6)},
			{5, RGBA(210, 210, 210, 0.8)},
			{5, RGBA(235, 235, 235, 0.95)},
			{4, RGBA(255, 255, 255, 1)},
		},
		Text:   RGBA(230, 230, 230, 0.9),
		Muted:  RGBA(120, 120, 120, 0.8),
		Button: RGBA(40, 40, 40, 0.85),
		Accent: RGBA(240, 240, 240, 0.9),
	}

	Palettes = map[string]Palette{
		PaletteIce.Name:   PaletteIce,
		PaletteEmber.Name: PaletteEmber,
		PaletteMono.Name:  PaletteMono,
	}
)

// GetPalette returns the named palette, falling back to ice.
func GetPalette(name string) Palette {
	if p, ok := Palettes[name]; ok {
		return p
	}
	return PaletteIce
}

// PaletteNames lists palettes in a stable order.
func PaletteNames() []string {
	names := make([]string, 0, len(Palettes))
	for n := range Palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
