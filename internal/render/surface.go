package render

import "github.com/san-kum/glowpend/internal/dynamo"

// Surface is a 2D drawing target sized to its host.
//
// RadialGlow, Line and Disc draw with additive ("lighter") blending. glow is
// a blur radius in pixels; surfaces without real blur may approximate it with
// wider translucent passes or ignore it. Rect and Text are for the HUD and use
// normal blending.
type Surface interface {
	Size() (w, h float64)
	Clear()
	RadialGlow(center dynamo.Point, r0, r1 float64, inner, outer Color)
	Line(a, b dynamo.Point, width float64, c Color, glow float64)
	Disc(center dynamo.Point, radius float64, c Color, glow float64)
	Rect(x, y, w, h float64, c Color)
	Text(s string, x, y float64, c Color)
}
