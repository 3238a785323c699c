package main

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/glowpend/internal/config"
	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/export"
	"github.com/san-kum/glowpend/internal/render"
	"github.com/san-kum/glowpend/internal/sim"
	"github.com/san-kum/glowpend/internal/storage"
)

func traceLoop() *sim.Loop {
	return sim.New(sim.Config{
		View:   sim.View{Width: 640, Height: 480},
		Slider: render.SliderDefault,
	}, rand.New(rand.NewSource(7)), nil)
}

func TestRunTraceCountsPerturbations(t *testing.T) {
	loop := traceLoop()
	res := runTrace(loop, traceOptions{Frames: 600, Rate: 60, PauseAt: -1, PerturbEvery: 2 * time.Second})

	if loop.Frames() != 600 {
		t.Errorf("frames = %d, want 600", loop.Frames())
	}
	if len(res.Energy) != 600 {
		t.Errorf("energy samples = %d", len(res.Energy))
	}
	// last frame is at 599/60 s, so firings land at 2, 4, 6 and 8 s
	if res.Perturbs != 4 {
		t.Errorf("perturbations = %d, want 4", res.Perturbs)
	}
	if res.FPS < 59 || res.FPS > 61 {
		t.Errorf("fps = %d, want about 60", res.FPS)
	}
}

func TestRunTracePauseFreezesAngles(t *testing.T) {
	loop := traceLoop()
	runTrace(loop, traceOptions{Frames: 10, Rate: 60, PauseAt: 0, PerturbEvery: time.Hour})
	want := traceLoop().Chain().Angles

	if !loop.Paused() {
		t.Fatal("loop should be paused")
	}
	if loop.Chain().Angles != want {
		t.Errorf("angles moved while paused: %v vs %v", loop.Chain().Angles, want)
	}
	if loop.Trail().Len() != 10 {
		t.Errorf("trail = %d, want 10", loop.Trail().Len())
	}
}

func TestPrintTrace(t *testing.T) {
	loop := traceLoop()
	res := runTrace(loop, traceOptions{Frames: 30, Rate: 60, PauseAt: -1, PerturbEvery: time.Hour})

	var buf bytes.Buffer
	if err := printTrace(&buf, loop, res); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"energy", "FRAMES", "theta1", "omega3", "peak energy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestSaveTraceRoundTrip(t *testing.T) {
	loop := traceLoop()
	opts := traceOptions{Frames: 20, Rate: 60, PauseAt: -1, PerturbEvery: time.Hour}
	res := runTrace(loop, opts)

	cfg := config.DefaultConfig()
	cfg.Seed = 7
	st := storage.New(t.TempDir())
	id, err := saveTrace(st, cfg, opts, res)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Seed != 7 || meta.Frames != 20 {
		t.Errorf("metadata = %+v", meta)
	}
	samples, err := st.LoadSamples(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 20 {
		t.Fatalf("samples = %d, want 20", len(samples))
	}
	if samples[19].TrailLen != 20 {
		t.Errorf("last trail length = %d", samples[19].TrailLen)
	}
}

func TestRenderSnapshot(t *testing.T) {
	loop := traceLoop()
	svg := export.NewSVG(640, 480)
	renderSnapshot(loop, svg, 10, 60)

	var buf bytes.Buffer
	if _, err := svg.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if loop.Frames() != 10 {
		t.Errorf("frames = %d", loop.Frames())
	}
	// ten trail points are all fresh, so each is drawn glowing
	if got := strings.Count(buf.String(), `r="1.5"`); got != 20 {
		t.Errorf("trail discs = %d, want 20", got)
	}
}

func TestTraceOptionsValidate(t *testing.T) {
	ok := traceOptions{Frames: 10, Rate: 60, PauseAt: -1, PerturbEvery: time.Second}
	if err := ok.validate(); err != nil {
		t.Fatalf("valid options rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*traceOptions)
	}{
		{"zero frames", func(o *traceOptions) { o.Frames = 0 }},
		{"negative rate", func(o *traceOptions) { o.Rate = -1 }},
		{"zero perturb period", func(o *traceOptions) { o.PerturbEvery = 0 }},
		{"negative perturb period", func(o *traceOptions) { o.PerturbEvery = -time.Second }},
	}
	for _, tt := range tests {
		o := ok
		tt.mutate(&o)
		if err := o.validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}
