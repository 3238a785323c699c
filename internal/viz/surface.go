package viz

import (
	"math"

	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/render"
)

// Dots this faint are not drawn; a braille dot is either on or off.
const visibleAlpha = 0.3

// BrailleSurface adapts a Canvas to render.Surface. Scene coordinates are
// divided by Scale to land on dots, so the scene keeps its pixel geometry.
// Glow, gradients and the HUD have no braille equivalent and are skipped.
type BrailleSurface struct {
	Canvas *Canvas
	Scale  float64
}

func NewBrailleSurface(c *Canvas, scale float64) *BrailleSurface {
	if scale <= 0 {
		scale = 1
	}
	return &BrailleSurface{Canvas: c, Scale: scale}
}

func (b *BrailleSurface) Size() (float64, float64) {
	w, h := b.Canvas.Dots()
	return float64(w) * b.Scale, float64(h) * b.Scale
}

func (b *BrailleSurface) Clear() { b.Canvas.Clear() }

func (b *BrailleSurface) RadialGlow(dynamo.Point, float64, float64, render.Color, render.Color) {}

func (b *BrailleSurface) Line(p, q dynamo.Point, width float64, c render.Color, glow float64) {
	if c.A < visibleAlpha {
		return
	}
	x0, y0 := b.dot(p)
	x1, y1 := b.dot(q)
	b.Canvas.DrawLine(x0, y0, x1, y1)
}

func (b *BrailleSurface) Disc(center dynamo.Point, radius float64, c render.Color, glow float64) {
	if c.A < visibleAlpha {
		return
	}
	x, y := b.dot(center)
	b.Canvas.FillCircle(x, y, int(math.Round(radius/b.Scale)))
}

func (b *BrailleSurface) Rect(x, y, w, h float64, c render.Color) {}

func (b *BrailleSurface) Text(s string, x, y float64, c render.Color) {}

func (b *BrailleSurface) dot(p dynamo.Point) (int, int) {
	return int(math.Round(p.X / b.Scale)), int(math.Round(p.Y / b.Scale))
}
