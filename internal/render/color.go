package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha RGBA color with a fractional alpha.
type Color struct {
	R, G, B uint8
	A       float64
}

func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// HSLA builds a color from hue in degrees, saturation and lightness in [0, 1].
func HSLA(h, s, l, a float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: a}
}

func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Alpha8 is the alpha channel scaled to a byte.
func (c Color) Alpha8() uint8 {
	return uint8(math.Round(clamp01(c.A) * 255))
}

// NRGBA converts to the non-premultiplied stdlib color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.Alpha8()}
}

// CSS renders the color as an rgba() string for canvas contexts.
func (c Color) CSS() string {
	buf := make([]byte, 0, 32)
	buf = append(buf, "rgba("...)
	buf = strconv.AppendUint(buf, uint64(c.R), 10)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, uint64(c.G), 10)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, uint64(c.B), 10)
	buf = append(buf, ',')
	buf = strconv.AppendFloat(buf, clamp01(c.A), 'g', 4, 64)
	buf = append(buf, ')')
	return string(buf)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
