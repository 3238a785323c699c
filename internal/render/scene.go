package render

import (
	"time"

	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/physics"
	"github.com/san-kum/glowpend/internal/trail"
)

const (
	armGlow      = 24.0
	nodeGlow     = 24.0
	trailRadius  = 1.5
	trailGlow    = 12.0
	trailFill    = 0.8
	hueRate      = 1000.0 / 800.0 // radians per second of the hue wave
	hueIndexStep = 0.02
)

// Frame is everything the painter needs from one tick.
type Frame struct {
	Now    time.Duration
	Origin dynamo.Point
	Joints [physics.Links]dynamo.Point
	Trail  *trail.Buffer
}

// Painter draws frames with a fixed palette.
type Painter struct {
	Palette Palette
}

func NewPainter(p Palette) *Painter {
	return &Painter{Palette: p}
}

// Paint clears s and draws the world layers of f.
func (p *Painter) Paint(s Surface, f Frame) {
	s.Clear()
	p.ambient(s, f)
	p.trail(s, f)
	p.arms(s, f)
	p.nodes(s, f)
}

func (p *Painter) ambient(s Surface, f Frame) {
	pal := p.Palette
	s.RadialGlow(f.Origin, pal.AmbientR0, pal.AmbientR1, pal.AmbientInner, pal.AmbientOuter)
}

// TrailColor is the fill color of the i-th newest trail point. The hue
// drifts along the trail and over time.
func (p *Painter) TrailColor(now time.Duration, i int, alpha float64) Color {
	pal := p.Palette
	hue := pal.TrailHue + pal.TrailHueSwing*dynamo.FastSin(now.Seconds()*hueRate+float64(i)*hueIndexStep)
	return HSLA(hue, pal.TrailSat, pal.TrailLight, alpha*trailFill)
}

func (p *Painter) trail(s Surface, f Frame) {
	if f.Trail == nil {
		return
	}
	f.Trail.Each(func(i int, pt trail.Point) bool {
		alpha := pt.Alpha(f.Now)
		if alpha <= 0 {
			return true
		}
		s.Disc(pt.Pos, trailRadius, p.TrailColor(f.Now, i, alpha), trailGlow*(alpha+0.1))
		return true
	})
}

func (p *Painter) arms(s Surface, f Frame) {
	pts := [physics.Links + 1]dynamo.Point{f.Origin, f.Joints[0], f.Joints[1], f.Joints[2]}
	for i, st := range p.Palette.Halos {
		s.Line(pts[i], pts[i+1], st.Width, st.Color, armGlow)
	}
	for i, st := range p.Palette.Cores {
		s.Line(pts[i], pts[i+1], st.Width, st.Color, armGlow)
	}
}

func (p *Painter) nodes(s Surface, f Frame) {
	pts := [physics.Links + 1]dynamo.Point{f.Origin, f.Joints[0], f.Joints[1], f.Joints[2]}
	for i, n := range p.Palette.Nodes {
		s.Disc(pts[i], n.Radius, n.Color, nodeGlow)
	}
}
