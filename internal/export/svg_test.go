package export

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/render"
	"github.com/san-kum/glowpend/internal/sim"
)

func TestSVGFrame(t *testing.T) {
	loop := sim.New(sim.Config{
		View:   sim.View{Width: 400, Height: 300},
		Slider: render.SliderDefault,
	}, rand.New(rand.NewSource(3)), nil)

	svg := NewSVG(400, 300)
	for i := 0; i < 3; i++ {
		loop.Tick(time.Duration(i)*16*time.Millisecond, svg)
	}

	var buf bytes.Buffer
	if _, err := svg.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatal("not a complete svg document")
	}
	// Clear runs each frame, so only the last frame is kept.
	if got := strings.Count(out, "<radialGradient"); got != 1 {
		t.Errorf("gradients = %d, want 1", got)
	}
	// halo and core per link, each glowing, so two elements per stroke
	if got := strings.Count(out, "<line"); got != 12 {
		t.Errorf("lines = %d, want 12", got)
	}
	if !strings.Contains(out, "feGaussianBlur") {
		t.Error("missing glow filter")
	}
	if !strings.Contains(out, ">Pause<") {
		t.Error("missing pause label")
	}
}

func TestSVGFilterReuse(t *testing.T) {
	svg := NewSVG(10, 10)
	c := render.RGBA(255, 255, 255, 1)
	svg.Disc(dynamo.Point{X: 1, Y: 1}, 2, c, 12)
	svg.Disc(dynamo.Point{X: 2, Y: 2}, 2, c, 12)
	svg.Disc(dynamo.Point{X: 3, Y: 3}, 2, c, 0)

	var buf bytes.Buffer
	svg.WriteTo(&buf)
	out := buf.String()
	if got := strings.Count(out, "<filter"); got != 1 {
		t.Errorf("filters = %d, want 1", got)
	}
	if got := strings.Count(out, "<circle"); got != 5 {
		t.Errorf("circles = %d, want 5", got)
	}
}

func TestEscape(t *testing.T) {
	if got := escape("a<b&c>"); got != "a&lt;b&amp;c&gt;" {
		t.Errorf("escape = %q", got)
	}
}

func TestSVGWorldBlendsAdditively(t *testing.T) {
	svg := NewSVG(100, 100)
	half := render.RGBA(255, 0, 0, 0.5)
	svg.Disc(dynamo.Point{X: 50, Y: 50}, 5, half, 0)
	svg.Disc(dynamo.Point{X: 52, Y: 50}, 5, half, 0)
	svg.Rect(0, 0, 10, 10, half)

	var buf bytes.Buffer
	svg.WriteTo(&buf)
	out := buf.String()

	if !strings.Contains(out, ".world > * { mix-blend-mode: plus-lighter; }") {
		t.Error("world children need a plus-lighter blend rule")
	}
	start := strings.Index(out, `<g class="world" style="isolation:isolate">`)
	if start < 0 {
		t.Fatal("missing isolated world group")
	}
	end := strings.Index(out[start:], "</g>") + start
	world := out[start:end]
	if got := strings.Count(world, "<circle"); got != 2 {
		t.Errorf("circles inside world group = %d, want 2", got)
	}
	if strings.Contains(world, "<rect x=") {
		t.Error("hud rect should sit outside the world group")
	}
}

func TestSVGGlowBuckets(t *testing.T) {
	svg := NewSVG(10, 10)
	c := render.RGBA(255, 255, 255, 1)
	for _, g := range []float64{12.1, 12.2, 11.9, 12.4} {
		svg.Disc(dynamo.Point{X: 1, Y: 1}, 1, c, g)
	}
	if len(svg.filters) != 2 {
		t.Errorf("filters = %d, want 2", len(svg.filters))
	}

	loop := sim.New(sim.Config{
		View:   sim.View{Width: 400, Height: 300},
		Slider: render.SliderDefault,
	}, rand.New(rand.NewSource(5)), nil)
	frames := NewSVG(400, 300)
	for i := 0; i < 300; i++ {
		loop.Tick(time.Duration(i)*16*time.Millisecond, frames)
	}
	// trail glow spans 12*(alpha+0.1), so at most 1.2..13.2 px in 0.5 px steps
	if got := len(frames.filters); got > 26 {
		t.Errorf("filters = %d for a %d point trail", got, loop.Trail().Len())
	}
}
