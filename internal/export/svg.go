// Package export writes frames of the scene to SVG.
package export

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/render"
)

// SVG is a render.Surface that records the frame as SVG elements. Every
// world element blends with mix-blend-mode: plus-lighter inside an isolated
// group, and glow radii share Gaussian blur filters in glowStep buckets.
type SVG struct {
	Width, Height float64
	Background    string

	world   strings.Builder
	hud     strings.Builder
	filters map[float64]string
}

// glowStep is the bucket width, in pixels, for shared blur filters.
const glowStep = 0.5

func NewSVG(width, height float64) *SVG {
	return &SVG{Width: width, Height: height, Background: "#000000", filters: map[float64]string{}}
}

func (s *SVG) Size() (float64, float64) { return s.Width, s.Height }

func (s *SVG) Clear() {
	s.world.Reset()
	s.hud.Reset()
	s.filters = map[float64]string{}
}

func (s *SVG) filter(glow float64) string {
	if glow <= 0 {
		return ""
	}
	key := math.Round(glow/glowStep) * glowStep
	if key <= 0 {
		key = glowStep
	}
	id, ok := s.filters[key]
	if !ok {
		id = fmt.Sprintf("glow%d", len(s.filters))
		s.filters[key] = id
	}
	return fmt.Sprintf(` filter="url(#%s)"`, id)
}

func (s *SVG) RadialGlow(center dynamo.Point, r0, r1 float64, inner, outer render.Color) {
	id := fmt.Sprintf("ambient%d", s.world.Len())
	fmt.Fprintf(&s.world, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.1f" cy="%.1f" fx="%.1f" fy="%.1f" r="%.1f" fr="%.1f">`+
		`<stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/></radialGradient>`+"\n",
		id, center.X, center.Y, center.X, center.Y, r1, r0, inner.CSS(), outer.CSS())
	fmt.Fprintf(&s.world, `<rect width="%.0f" height="%.0f" fill="url(#%s)"/>`+"\n", s.Width, s.Height, id)
}

func (s *SVG) Line(a, b dynamo.Point, width float64, c render.Color, glow float64) {
	line := fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f" stroke-linecap="round"`,
		a.X, a.Y, b.X, b.Y, c.CSS(), width)
	if glow > 0 {
		s.world.WriteString(line + s.filter(glow) + "/>\n")
	}
	s.world.WriteString(line + "/>\n")
}

func (s *SVG) Disc(center dynamo.Point, radius float64, c render.Color, glow float64) {
	circle := fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"`, center.X, center.Y, radius, c.CSS())
	if glow > 0 {
		s.world.WriteString(circle + s.filter(glow) + "/>\n")
	}
	s.world.WriteString(circle + "/>\n")
}

func (s *SVG) Rect(x, y, w, h float64, c render.Color) {
	fmt.Fprintf(&s.hud, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n", x, y, w, h, c.CSS())
}

func (s *SVG) Text(text string, x, y float64, c render.Color) {
	fmt.Fprintf(&s.hud, `<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="11">%s</text>`+"\n",
		x, y, c.CSS(), escape(text))
}

// WriteTo writes the recorded frame as a complete SVG document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background)

	if len(s.filters) > 0 {
		glows := make([]float64, 0, len(s.filters))
		for g := range s.filters {
			glows = append(glows, g)
		}
		sort.Float64s(glows)
		sb.WriteString("<defs>\n")
		for _, g := range glows {
			// a canvas shadowBlur of b is roughly a Gaussian with sigma b/2
			fmt.Fprintf(&sb, `<filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%"><feGaussianBlur stdDeviation="%.1f"/></filter>`+"\n",
				s.filters[g], g/2)
		}
		sb.WriteString("</defs>\n")
	}

	sb.WriteString("<style>.world > * { mix-blend-mode: plus-lighter; }</style>\n")
	sb.WriteString(`<g class="world" style="isolation:isolate">` + "\n")
	sb.WriteString(s.world.String())
	sb.WriteString("</g>\n")
	sb.WriteString(s.hud.String())
	sb.WriteString("</svg>\n")

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
