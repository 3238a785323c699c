package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/render"
)

var colBg = rl.NewColor(0, 0, 0, 255)

// glowPasses is how many widening strokes approximate a blur halo.
const glowPasses = 4

// Surface draws onto the current raylib frame. World layers use additive
// blending; Rect and Text switch back to alpha blending for the HUD.
type Surface struct {
	additive bool
}

func toRL(c render.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.Alpha8())
}

func vec(p dynamo.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func (s *Surface) Size() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (s *Surface) Clear() {
	s.blendAlpha()
	rl.ClearBackground(colBg)
}

func (s *Surface) RadialGlow(center dynamo.Point, r0, r1 float64, inner, outer render.Color) {
	s.blendAdditive()
	rl.DrawCircleGradient(int32(center.X), int32(center.Y), float32(r1), toRL(inner), toRL(outer))
}

func (s *Surface) Line(a, b dynamo.Point, width float64, c render.Color, glow float64) {
	s.blendAdditive()
	if glow > 0 {
		halo := c.WithAlpha(c.A / (2 * glowPasses))
		for i := glowPasses; i > 0; i-- {
			w := width + glow*float64(i)/glowPasses
			rl.DrawLineEx(vec(a), vec(b), float32(w), toRL(halo))
		}
	}
	rl.DrawLineEx(vec(a), vec(b), float32(width), toRL(c))
}

func (s *Surface) Disc(center dynamo.Point, radius float64, c render.Color, glow float64) {
	s.blendAdditive()
	if glow > 0 {
		outer := c.WithAlpha(0)
		halo := c.WithAlpha(c.A / 2)
		rl.DrawCircleGradient(int32(math.Round(center.X)), int32(math.Round(center.Y)), float32(radius+glow), toRL(halo), toRL(outer))
	}
	rl.DrawCircleV(vec(center), float32(radius), toRL(c))
}

func (s *Surface) Rect(x, y, w, h float64, c render.Color) {
	s.blendAlpha()
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), toRL(c))
}

func (s *Surface) Text(text string, x, y float64, c render.Color) {
	s.blendAlpha()
	rl.DrawText(text, int32(x), int32(y), 10, toRL(c))
}

func (s *Surface) blendAdditive() {
	if s.additive {
		return
	}
	rl.BeginBlendMode(rl.BlendAdditive)
	s.additive = true
}

func (s *Surface) blendAlpha() {
	if !s.additive {
		return
	}
	rl.EndBlendMode()
	s.additive = false
}

// end closes any blend mode left open by the frame.
func (s *Surface) end() { s.blendAlpha() }
