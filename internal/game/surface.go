package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/render"
)

const (
	glowPasses   = 4
	gradientRing = 16
)

// Surface draws onto an ebiten image. Filled and stroked paths go through
// DrawTriangles with BlendLighter so overlapping glows add up.
type Surface struct {
	dst   *ebiten.Image
	white *ebiten.Image
	vs    []ebiten.Vertex
	is    []uint16
}

func newSurface() *Surface {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &Surface{white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)}
}

func (s *Surface) target(dst *ebiten.Image) *Surface {
	s.dst = dst
	return s
}

func (s *Surface) Size() (float64, float64) {
	b := s.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Surface) Clear() { s.dst.Fill(color.Black) }

func (s *Surface) RadialGlow(center dynamo.Point, r0, r1 float64, inner, outer render.Color) {
	for i := 0; i < gradientRing; i++ {
		f := float64(i) / gradientRing
		r := r1 - (r1-r0)*f
		c := lerp(outer, inner, f)
		s.fillCircle(center, r, c.WithAlpha(c.A/gradientRing*2))
	}
}

func (s *Surface) Line(a, b dynamo.Point, width float64, c render.Color, glow float64) {
	if glow > 0 {
		halo := c.WithAlpha(c.A / (2 * glowPasses))
		for i := glowPasses; i > 0; i-- {
			s.strokeLine(a, b, width+glow*float64(i)/glowPasses, halo)
		}
	}
	s.strokeLine(a, b, width, c)
}

func (s *Surface) Disc(center dynamo.Point, radius float64, c render.Color, glow float64) {
	if glow > 0 {
		halo := c.WithAlpha(c.A / (2 * glowPasses))
		for i := glowPasses; i > 0; i-- {
			s.fillCircle(center, radius+glow*float64(i)/glowPasses, halo)
		}
	}
	s.fillCircle(center, radius, c)
}

func (s *Surface) Rect(x, y, w, h float64, c render.Color) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c.NRGBA(), false)
}

// Text uses the debug font, which is always white.
func (s *Surface) Text(text string, x, y float64, c render.Color) {
	ebitenutil.DebugPrintAt(s.dst, text, int(x), int(y)-4)
}

func (s *Surface) strokeLine(a, b dynamo.Point, width float64, c render.Color) {
	var p vector.Path
	p.MoveTo(float32(a.X), float32(a.Y))
	p.LineTo(float32(b.X), float32(b.Y))
	op := &vector.StrokeOptions{Width: float32(width), LineCap: vector.LineCapRound}
	s.vs, s.is = p.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], op)
	s.draw(c)
}

func (s *Surface) fillCircle(center dynamo.Point, r float64, c render.Color) {
	if r <= 0 {
		return
	}
	var p vector.Path
	p.Arc(float32(center.X), float32(center.Y), float32(r), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	s.vs, s.is = p.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	s.draw(c)
}

func (s *Surface) draw(c render.Color) {
	r, g, b, a := premultiplied(c)
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = r
		s.vs[i].ColorG = g
		s.vs[i].ColorB = b
		s.vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter, AntiAlias: true}
	s.dst.DrawTriangles(s.vs, s.is, s.white, op)
}

func premultiplied(c render.Color) (r, g, b, a float32) {
	a = float32(c.A)
	if a > 1 {
		a = 1
	}
	if a < 0 {
		a = 0
	}
	return float32(c.R) / 255 * a, float32(c.G) / 255 * a, float32(c.B) / 255 * a, a
}

func lerp(a, b render.Color, f float64) render.Color {
	mix := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f)) }
	return render.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: a.A + (b.A-a.A)*f}
}
