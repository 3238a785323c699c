package sim

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/metrics"
	"github.com/san-kum/glowpend/internal/physics"
	"github.com/san-kum/glowpend/internal/render"
	"github.com/san-kum/glowpend/internal/trail"
)

const (
	// MaxFrameTime caps dt after stalls such as a suspended window.
	MaxFrameTime = 40 * time.Millisecond

	// PerturbEvery is the wall-clock period of the random kicks.
	PerturbEvery = 15 * time.Second

	// PerturbKeep is the share of the trail that survives a kick.
	PerturbKeep = 0.6

	// OriginLift raises the pivot above the surface center.
	OriginLift = 60.0

	trailBase    = 150
	trailPerStep = 25
)

// TrailMaxFor maps a slider value to a trail cap: floor(150 + 25v).
func TrailMaxFor(v float64) int {
	return int(math.Floor(trailBase + v*trailPerStep))
}

// View is the drawing area in pixels.
type View struct {
	Width, Height float64
}

// Origin is the pivot: the center of the view, lifted by OriginLift.
func (v View) Origin() dynamo.Point {
	return dynamo.Point{X: v.Width / 2, Y: v.Height/2 - OriginLift}
}

// Display receives readouts as soon as they change.
type Display interface {
	SetFPS(fps int)
	SetEnergy(text string)
}

// Readout is the latest FPS and energy values.
type Readout struct {
	FPS    int
	Energy float64
}

func (r Readout) EnergyText() string {
	return metrics.FormatEnergy(r.Energy)
}

// Config sets up a Loop.
type Config struct {
	View    View
	Slider  float64
	Palette render.Palette
	Chain   *physics.Chain
}

// Loop is the per-frame update-and-render cycle.
type Loop struct {
	chain    *physics.Chain
	trail    *trail.Buffer
	rng      dynamo.Rand
	log      *zap.Logger
	painter  *render.Painter
	controls render.Controls
	display  Display

	view     View
	paused   bool
	slider   float64
	trailMax int

	started  bool
	lastTime time.Duration
	fps      *metrics.FPS
	energy   *metrics.Energy
	frames   int64
	joints   [physics.Links]dynamo.Point
}

// New builds a loop. A nil logger is replaced with a no-op one.
func New(cfg Config, rng dynamo.Rand, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	chain := cfg.Chain
	if chain == nil {
		chain = physics.NewChain()
	}
	pal := cfg.Palette
	if pal.Name == "" {
		pal = render.PaletteIce
	}
	l := &Loop{
		chain:    chain,
		rng:      rng,
		log:      log,
		painter:  render.NewPainter(pal),
		controls: render.DefaultControls(),
		view:     cfg.View,
		fps:      metrics.NewFPS(0),
		energy:   metrics.NewEnergy(),
	}
	l.SetTrailSlider(cfg.Slider)
	l.trail = trail.New(l.trailMax + 1)
	l.energy.Observe(chain)
	return l
}

// SetDisplay registers a readout sink. Passing nil removes it.
func (l *Loop) SetDisplay(d Display) { l.display = d }

// Start sets the reference time for dt and the FPS counter.
func (l *Loop) Start(now time.Duration) {
	l.started = true
	l.lastTime = now
	l.fps.Restart(now)
}

// Tick runs one frame at now. s may be nil to skip drawing.
func (l *Loop) Tick(now time.Duration, s render.Surface) {
	if !l.started {
		l.Start(now)
	}

	elapsed := now - l.lastTime
	if elapsed > MaxFrameTime {
		elapsed = MaxFrameTime
	}
	dt := elapsed.Seconds()
	l.lastTime = now

	if l.fps.Observe(now) && l.display != nil {
		l.display.SetFPS(l.fps.Rate())
	}

	if !l.paused {
		l.chain.Step(now, dt, l.rng)
	}

	l.joints = l.chain.Joints(l.view.Origin())
	l.energy.Observe(l.chain)
	l.trail.Push(trail.Point{Pos: l.joints[physics.Links-1], T: now})
	l.trail.Truncate(l.trailMax)

	if s != nil {
		l.painter.Paint(s, l.Frame(now))
		l.controls.Draw(s, l.painter.Palette, l.HUD())
	}

	if l.display != nil {
		l.display.SetEnergy(l.energy.Text())
	}
	l.frames++
}

// Perturb kicks the chain and cuts the trail to its newest 60%. It runs
// whether or not the loop is paused.
func (l *Loop) Perturb() {
	before := l.trail.Len()
	l.chain.Perturb(l.rng)
	l.trail.KeepFraction(PerturbKeep)
	l.log.Debug("perturbed chain",
		zap.Int("trail_before", before),
		zap.Int("trail_after", l.trail.Len()),
		zap.Float64s("angles", l.chain.Angles[:]),
	)
}

// TogglePause flips the pause flag and returns the new value.
func (l *Loop) TogglePause() bool {
	l.paused = !l.paused
	l.log.Debug("pause toggled", zap.Bool("paused", l.paused))
	return l.paused
}

func (l *Loop) Paused() bool { return l.paused }

// PauseLabel is the text the pause button should show.
func (l *Loop) PauseLabel() string {
	if l.paused {
		return "Resume"
	}
	return "Pause"
}

// Reset throws the chain to a fresh random pose at rest and clears the trail.
func (l *Loop) Reset() {
	l.chain.Reset(l.rng)
	l.trail.Clear()
	l.log.Debug("reset chain", zap.Float64s("angles", l.chain.Angles[:]))
}

// SetTrailSlider updates the trail cap. Existing points are kept until the
// next frame truncates them.
func (l *Loop) SetTrailSlider(v float64) {
	l.slider = v
	l.trailMax = TrailMaxFor(v)
}

func (l *Loop) Slider() float64 { return l.slider }

func (l *Loop) TrailMax() int { return l.trailMax }

// Resize changes the view. The pivot moves on the next frame.
func (l *Loop) Resize(w, h float64) {
	if w == l.view.Width && h == l.view.Height {
		return
	}
	l.view = View{Width: w, Height: h}
	l.log.Debug("view resized", zap.Float64("width", w), zap.Float64("height", h))
}

func (l *Loop) View() View { return l.view }

// Apply performs a control-panel action.
func (l *Loop) Apply(a render.Action) {
	switch a.Kind {
	case render.ActionPause:
		l.TogglePause()
	case render.ActionReset:
		l.Reset()
	case render.ActionSlide:
		l.SetTrailSlider(a.Value)
	}
}

// Controls is the panel layout used for hit-testing and drawing.
func (l *Loop) Controls() render.Controls { return l.controls }

// SetPalette swaps the scene colors.
func (l *Loop) SetPalette(p render.Palette) { l.painter.Palette = p }

func (l *Loop) Palette() render.Palette { return l.painter.Palette }

func (l *Loop) Chain() *physics.Chain { return l.chain }

func (l *Loop) Trail() *trail.Buffer { return l.trail }

// Joints are the positions computed by the latest Tick.
func (l *Loop) Joints() [physics.Links]dynamo.Point { return l.joints }

// Frames counts ticks since construction.
func (l *Loop) Frames() int64 { return l.frames }

// Metrics returns the live readouts in display order.
func (l *Loop) Metrics() []metrics.Metric {
	return []metrics.Metric{l.fps, l.energy}
}

// PeakEnergy is the largest energy readout since the last reset.
func (l *Loop) PeakEnergy() float64 { return l.energy.Peak() }

func (l *Loop) Readout() Readout {
	return Readout{FPS: l.fps.Rate(), Energy: l.energy.Value()}
}

// Frame captures what the painter draws at now.
func (l *Loop) Frame(now time.Duration) render.Frame {
	return render.Frame{
		Now:    now,
		Origin: l.view.Origin(),
		Joints: l.joints,
		Trail:  l.trail,
	}
}

func (l *Loop) HUD() render.HUD {
	return render.HUD{
		FPS:        l.fps.Rate(),
		Energy:     l.energy.Text(),
		PauseLabel: l.PauseLabel(),
		Slider:     l.slider,
		TrailMax:   l.trailMax,
		TrailLen:   l.trail.Len(),
	}
}
