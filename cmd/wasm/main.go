//go:build js && wasm

// Command wasm runs the animation on a browser canvas. The page provides
// #pendulumCanvas, #pauseBtn, #resetBtn, #trailSlider, #fps and #energyVal.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"syscall/js"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/glowpend/internal/config"
	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/logging"
	"github.com/san-kum/glowpend/internal/render"
	"github.com/san-kum/glowpend/internal/sim"
)

// canvasSurface draws through a CanvasRenderingContext2D. The page's DOM
// hosts the controls, so Rect and Text do nothing here.
type canvasSurface struct {
	canvas js.Value
	ctx    js.Value
}

func (c *canvasSurface) Size() (float64, float64) {
	return c.canvas.Get("width").Float(), c.canvas.Get("height").Float()
}

func (c *canvasSurface) Clear() {
	w, h := c.Size()
	c.ctx.Set("globalCompositeOperation", "source-over")
	c.ctx.Set("shadowBlur", 0)
	c.ctx.Call("clearRect", 0, 0, w, h)
	c.ctx.Set("globalCompositeOperation", "lighter")
}

func (c *canvasSurface) RadialGlow(center dynamo.Point, r0, r1 float64, inner, outer render.Color) {
	g := c.ctx.Call("createRadialGradient", center.X, center.Y, r0, center.X, center.Y, r1)
	g.Call("addColorStop", 0, inner.CSS())
	g.Call("addColorStop", 1, outer.CSS())
	w, h := c.Size()
	c.ctx.Set("shadowBlur", 0)
	c.ctx.Set("fillStyle", g)
	c.ctx.Call("fillRect", 0, 0, w, h)
}

func (c *canvasSurface) Line(a, b dynamo.Point, width float64, col render.Color, glow float64) {
	css := col.CSS()
	c.ctx.Set("strokeStyle", css)
	c.ctx.Set("shadowColor", css)
	c.ctx.Set("shadowBlur", glow)
	c.ctx.Set("lineWidth", width)
	c.ctx.Set("lineCap", "round")
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", a.X, a.Y)
	c.ctx.Call("lineTo", b.X, b.Y)
	c.ctx.Call("stroke")
}

func (c *canvasSurface) Disc(center dynamo.Point, radius float64, col render.Color, glow float64) {
	css := col.CSS()
	c.ctx.Set("fillStyle", css)
	c.ctx.Set("shadowColor", css)
	c.ctx.Set("shadowBlur", glow)
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", center.X, center.Y, radius, 0, 2*math.Pi)
	c.ctx.Call("fill")
}

func (c *canvasSurface) Rect(x, y, w, h float64, col render.Color) {}

func (c *canvasSurface) Text(s string, x, y float64, col render.Color) {}

// domDisplay writes the readouts into their elements.
type domDisplay struct {
	fps, energy js.Value
}

func (d domDisplay) SetFPS(v int)       { d.fps.Set("innerText", v) }
func (d domDisplay) SetEnergy(s string) { d.energy.Set("innerText", s) }

func element(doc js.Value, id string) (js.Value, error) {
	el := doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return js.Value{}, fmt.Errorf("#%s: %w", id, dynamo.ErrMissingElement)
	}
	return el, nil
}

type page struct {
	canvas, pause, reset, slider, fps, energy js.Value
}

func lookup(doc js.Value) (page, error) {
	var p page
	ids := []struct {
		id  string
		dst *js.Value
	}{
		{"pendulumCanvas", &p.canvas},
		{"pauseBtn", &p.pause},
		{"resetBtn", &p.reset},
		{"trailSlider", &p.slider},
		{"fps", &p.fps},
		{"energyVal", &p.energy},
	}
	for _, e := range ids {
		el, err := element(doc, e.id)
		if err != nil {
			return p, err
		}
		*e.dst = el
	}
	return p, nil
}

func run(log *zap.Logger) error {
	doc := js.Global().Get("document")
	pg, err := lookup(doc)
	if err != nil {
		return &dynamo.InitError{Component: "page", Wrapped: err}
	}
	ctx := pg.canvas.Call("getContext", "2d", map[string]any{"alpha": true})
	if ctx.IsNull() {
		return &dynamo.InitError{Component: "canvas", Wrapped: dynamo.ErrNoSurface}
	}
	surface := &canvasSurface{canvas: pg.canvas, ctx: ctx}

	cfg := config.DefaultConfig()
	loop := sim.New(sim.Config{
		Slider:  cfg.TrailSlider,
		Palette: cfg.Palette(),
	}, rand.New(rand.NewSource(cfg.ResolveSeed())), log)
	loop.SetDisplay(domDisplay{fps: pg.fps, energy: pg.energy})

	resize := func() {
		rect := pg.canvas.Get("parentElement").Call("getBoundingClientRect")
		w, h := math.Floor(rect.Get("width").Float()), math.Floor(rect.Get("height").Float())
		pg.canvas.Set("width", w)
		pg.canvas.Set("height", h)
		loop.Resize(w, h)
	}
	resize()

	// Callbacks live for the page's lifetime and are never released.
	js.Global().Call("addEventListener", "resize", js.FuncOf(func(this js.Value, args []js.Value) any {
		resize()
		return nil
	}))
	pg.slider.Call("addEventListener", "input", js.FuncOf(func(this js.Value, args []js.Value) any {
		loop.SetTrailSlider(pg.slider.Get("value").Float())
		return nil
	}))
	pg.pause.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) any {
		loop.TogglePause()
		pg.pause.Set("innerText", loop.PauseLabel())
		return nil
	}))
	pg.reset.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) any {
		loop.Reset()
		return nil
	}))
	js.Global().Call("setInterval", js.FuncOf(func(this js.Value, args []js.Value) any {
		loop.Perturb()
		return nil
	}), sim.PerturbEvery.Milliseconds())

	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		ms := args[0].Float()
		loop.Tick(time.Duration(ms*float64(time.Millisecond)), surface)
		js.Global().Call("requestAnimationFrame", frame)
		return nil
	})
	js.Global().Call("requestAnimationFrame", frame)

	log.Info("canvas attached", zap.Float64("width", loop.View().Width), zap.Float64("height", loop.View().Height))
	return nil
}

func main() {
	log, _, err := logging.NewStderr(config.DefaultConfig().Log)
	if err != nil {
		log = zap.NewNop()
	}
	if err := run(log); err != nil {
		log.Error("startup failed", zap.Error(err))
		js.Global().Get("console").Call("error", err.Error())
		return
	}
	select {}
}
