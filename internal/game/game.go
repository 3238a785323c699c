// Package game hosts the animation in an Ebitengine window.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/san-kum/glowpend/internal/render"
	"github.com/san-kum/glowpend/internal/sim"
)

// Game implements ebiten.Game. Ebitengine calls Update, Draw and Layout
// from one goroutine.
type Game struct {
	loop    *sim.Loop
	log     *zap.Logger
	start   time.Time
	surface *Surface
	perturb *sim.Interval
	drag    bool
	w, h    int
}

func New(loop *sim.Loop, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		loop:    loop,
		log:     log,
		start:   time.Now(),
		surface: newSurface(),
		perturb: sim.NewInterval(sim.PerturbEvery),
	}
}

func (g *Game) now() time.Duration { return time.Since(g.start) }

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	ctl := g.loop.Controls()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.loop.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.loop.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.loop.SetTrailSlider(ctl.Nudge(g.loop.Slider(), 1))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.loop.SetTrailSlider(ctl.Nudge(g.loop.Slider(), -1))
	}

	mx, my := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		act := ctl.HitTest(float64(mx), float64(my))
		g.drag = act.Kind == render.ActionSlide
		g.loop.Apply(act)
	case g.drag && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.loop.SetTrailSlider(ctl.SliderValueAt(float64(mx)))
	default:
		g.drag = false
	}

	if g.perturb.Due(g.now()) {
		g.loop.Perturb()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.loop.Tick(g.now(), g.surface.target(screen))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.loop.Resize(float64(g.w), float64(g.h))
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(loop *sim.Loop, title string, width, height, targetFPS int, log *zap.Logger) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(targetFPS)

	g := New(loop, log)
	g.log.Info("ebiten window opening", zap.Int("width", width), zap.Int("height", height))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("ebiten: %w", err)
	}
	g.log.Info("ebiten window closed", zap.Int64("frames", loop.Frames()))
	return nil
}
