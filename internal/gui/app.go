package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/glowpend/internal/render"
	"github.com/san-kum/glowpend/internal/sim"
)

// App hosts a sim.Loop in a raylib window. raylib's draw loop runs on the
// main thread, so the loop, its input handlers and the perturbation
// interval all run there too.
type App struct {
	Loop    *sim.Loop
	Log     *zap.Logger
	Title   string
	Width   int
	Height  int
	Target  int
	surface Surface
	perturb *sim.Interval
	drag    bool
}

func NewApp(loop *sim.Loop, title string, width, height, targetFPS int, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		Loop:    loop,
		Log:     log,
		Title:   title,
		Width:   width,
		Height:  height,
		Target:  targetFPS,
		perturb: sim.NewInterval(sim.PerturbEvery),
	}
}

func (a *App) initWindow() {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(a.Width), int32(a.Height), a.Title)
	rl.SetTargetFPS(int32(a.Target))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	a.initWindow()
	defer rl.CloseWindow()

	a.Loop.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	a.Log.Info("window opened",
		zap.Int("width", rl.GetScreenWidth()),
		zap.Int("height", rl.GetScreenHeight()),
		zap.String("palette", a.Loop.Palette().Name))

	now := a.now()
	a.Loop.Start(now)
	a.perturb.Start(now)

	for !rl.WindowShouldClose() {
		if a.Update() {
			break
		}
		a.Draw()
	}
	a.Log.Info("window closed", zap.Int64("frames", a.Loop.Frames()))
	return nil
}

func (a *App) now() time.Duration {
	return time.Duration(rl.GetTime() * float64(time.Second))
}

// Update handles input and timers. It reports whether the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}

	if rl.IsWindowResized() {
		a.Loop.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}

	ctl := a.Loop.Controls()
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Loop.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Loop.Reset()
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) || rl.IsKeyPressed(rl.KeyRight) {
		a.Loop.SetTrailSlider(ctl.Nudge(a.Loop.Slider(), 1))
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) || rl.IsKeyPressed(rl.KeyLeft) {
		a.Loop.SetTrailSlider(ctl.Nudge(a.Loop.Slider(), -1))
	}

	mouse := rl.GetMousePosition()
	mx, my := float64(mouse.X), float64(mouse.Y)
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		act := ctl.HitTest(mx, my)
		a.drag = act.Kind == render.ActionSlide
		a.Loop.Apply(act)
	} else if a.drag && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		a.Loop.SetTrailSlider(ctl.SliderValueAt(mx))
	} else {
		a.drag = false
	}

	if a.perturb.Due(a.now()) {
		a.Loop.Perturb()
	}
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	a.Loop.Tick(a.now(), &a.surface)
	a.surface.end()
	rl.EndDrawing()
}
