package render

import (
	"math"
	"strconv"
)

// Rect is an axis-aligned box in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// ActionKind names what a pointer or key event asks the loop to do.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionPause
	ActionReset
	ActionSlide
)

// Action is the result of hit-testing the control panel.
type Action struct {
	Kind  ActionKind
	Value float64
}

// Slider range for the trail-length control.
const (
	SliderMin     = 0.0
	SliderMax     = 20.0
	SliderStep    = 1.0
	SliderDefault = 14.0
)

// HUD is the readout and control state drawn over the scene.
type HUD struct {
	FPS        int
	Energy     string
	PauseLabel string
	Slider     float64
	TrailMax   int
	TrailLen   int
}

// Controls lays out the pause and reset buttons, the trail slider and the
// readouts in the top-left corner.
type Controls struct {
	Pause  Rect
	Reset  Rect
	Slider Rect
	Min    float64
	Max    float64
	Step   float64
}

func DefaultControls() Controls {
	return Controls{
		Pause:  Rect{X: 16, Y: 16, W: 84, H: 26},
		Reset:  Rect{X: 108, Y: 16, W: 84, H: 26},
		Slider: Rect{X: 16, Y: 54, W: 176, H: 10},
		Min:    SliderMin,
		Max:    SliderMax,
		Step:   SliderStep,
	}
}

// HitTest maps a pointer press at (x, y) to an action.
func (c Controls) HitTest(x, y float64) Action {
	switch {
	case c.Pause.Contains(x, y):
		return Action{Kind: ActionPause}
	case c.Reset.Contains(x, y):
		return Action{Kind: ActionReset}
	case c.sliderHit().Contains(x, y):
		return Action{Kind: ActionSlide, Value: c.SliderValueAt(x)}
	}
	return Action{}
}

// sliderHit widens the track vertically so it is easy to grab.
func (c Controls) sliderHit() Rect {
	r := c.Slider
	r.Y -= 6
	r.H += 12
	return r
}

// SliderValueAt converts a pointer x to a snapped slider value.
func (c Controls) SliderValueAt(x float64) float64 {
	frac := (x - c.Slider.X) / c.Slider.W
	frac = clamp01(frac)
	v := c.Min + frac*(c.Max-c.Min)
	if c.Step > 0 {
		v = c.Min + math.Round((v-c.Min)/c.Step)*c.Step
	}
	return c.Clamp(v)
}

// Nudge moves v by n steps, staying in range.
func (c Controls) Nudge(v float64, n int) float64 {
	return c.Clamp(v + float64(n)*c.Step)
}

func (c Controls) Clamp(v float64) float64 {
	return math.Max(c.Min, math.Min(c.Max, v))
}

// Draw paints the panel and readouts.
func (c Controls) Draw(s Surface, pal Palette, h HUD) {
	button := func(r Rect, label string) {
		s.Rect(r.X, r.Y, r.W, r.H, pal.Button)
		s.Text(label, r.X+10, r.Y+7, pal.Text)
	}
	button(c.Pause, h.PauseLabel)
	button(c.Reset, "Reset")

	s.Rect(c.Slider.X, c.Slider.Y, c.Slider.W, c.Slider.H, pal.Button)
	frac := 0.0
	if c.Max > c.Min {
		frac = clamp01((h.Slider - c.Min) / (c.Max - c.Min))
	}
	s.Rect(c.Slider.X, c.Slider.Y, c.Slider.W*frac, c.Slider.H, pal.Accent.WithAlpha(0.6))
	knob := c.Slider.X + c.Slider.W*frac
	s.Rect(knob-3, c.Slider.Y-4, 6, c.Slider.H+8, pal.Accent)

	y := c.Slider.Y + c.Slider.H + 12
	s.Text("Trail "+strconv.Itoa(h.TrailLen)+"/"+strconv.Itoa(h.TrailMax), c.Slider.X, y, pal.Muted)
	s.Text("FPS "+strconv.Itoa(h.FPS), c.Slider.X, y+18, pal.Text)
	s.Text("Energy "+h.Energy, c.Slider.X, y+36, pal.Text)
}
