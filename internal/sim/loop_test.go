package sim_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/physics"
	"github.com/san-kum/glowpend/internal/render"
	"github.com/san-kum/glowpend/internal/sim"
)

const frame = time.Second / 60

type display struct {
	fps    []int
	energy []string
}

func (d *display) SetFPS(fps int)        { d.fps = append(d.fps, fps) }
func (d *display) SetEnergy(text string) { d.energy = append(d.energy, text) }

type countingSurface struct {
	clears, lines, discs, glows int
}

func (c *countingSurface) Size() (float64, float64) { return 640, 480 }
func (c *countingSurface) Clear()                    { c.clears++ }
func (c *countingSurface) RadialGlow(dynamo.Point, float64, float64, render.Color, render.Color) {
	c.glows++
}
func (c *countingSurface) Line(dynamo.Point, dynamo.Point, float64, render.Color, float64) {
	c.lines++
}
func (c *countingSurface) Disc(dynamo.Point, float64, render.Color, float64) { c.discs++ }
func (c *countingSurface) Rect(float64, float64, float64, float64, render.Color) {}
func (c *countingSurface) Text(string, float64, float64, render.Color)         {}

// textSurface keeps the HUD strings of the last frame.
type textSurface struct {
	countingSurface
	texts []string
}

func (t *textSurface) Clear() { t.texts = t.texts[:0] }
func (t *textSurface) Text(s string, x, y float64, c render.Color) {
	t.texts = append(t.texts, s)
}

func newLoop(slider float64) *sim.Loop {
	return sim.New(sim.Config{
		View:   sim.View{Width: 640, Height: 480},
		Slider: slider,
	}, dynamo.FixedRand(0.5), nil)
}

func run(l *sim.Loop, from time.Duration, n int) time.Duration {
	now := from
	for i := 0; i < n; i++ {
		now += frame
		l.Tick(now, nil)
	}
	return now
}

var _ = Describe("Loop", func() {
	var l *sim.Loop

	BeforeEach(func() {
		l = newLoop(render.SliderDefault)
		l.Start(0)
	})

	Describe("trail length mapping", func() {
		DescribeTable("maps slider values to trail caps",
			func(v float64, want int) {
				Expect(sim.TrailMaxFor(v)).To(Equal(want))
			},
			Entry("minimum", 0.0, 150),
			Entry("ten", 10.0, 400),
			Entry("default", render.SliderDefault, 500),
			Entry("fractional", 0.5, 162),
		)

		It("defers truncation to the next frame", func() {
			run(l, 0, 300)
			Expect(l.Trail().Len()).To(Equal(300))

			l.SetTrailSlider(0)
			Expect(l.TrailMax()).To(Equal(150))
			Expect(l.Trail().Len()).To(Equal(300))

			l.Tick(301*frame, nil)
			Expect(l.Trail().Len()).To(Equal(150))
		})
	})

	Describe("trail cap", func() {
		It("never exceeds trailMax after a frame", func() {
			l.SetTrailSlider(0)
			now := time.Duration(0)
			for i := 0; i < 400; i++ {
				now += frame
				l.Tick(now, nil)
				Expect(l.Trail().Len()).To(BeNumerically("<=", l.TrailMax()))
			}
			Expect(l.Trail().Len()).To(Equal(150))
		})

		It("records the end effector as the newest point", func() {
			l.Tick(frame, nil)
			p, ok := l.Trail().Newest()
			Expect(ok).To(BeTrue())
			Expect(p.Pos).To(Equal(l.Joints()[physics.Links-1]))
			Expect(p.T).To(Equal(frame))
		})
	})

	Describe("frame-time clamp", func() {
		It("uses at most 40ms of dt after a long gap", func() {
			clamped := newLoop(render.SliderDefault)
			clamped.Start(0)
			reference := newLoop(render.SliderDefault)
			reference.Start(0)

			gap := 5 * time.Second
			clamped.Tick(gap, nil)

			// Same forcing time, but a real 40ms step.
			reference.Start(gap - sim.MaxFrameTime)
			reference.Tick(gap, nil)

			Expect(clamped.Chain().Angles).To(Equal(reference.Chain().Angles))
			Expect(clamped.Chain().Velocity).To(Equal(reference.Chain().Velocity))
		})

		It("moves the angles by velocity * 0.04 * 60", func() {
			c := l.Chain()
			before := c.Angles
			l.Tick(2*time.Second, nil)
			for i := 0; i < physics.Links; i++ {
				Expect(c.Angles[i] - before[i]).To(BeNumerically("~", c.Velocity[i]*0.04*60, 1e-15))
			}
		})
	})

	Describe("pause", func() {
		It("freezes the chain while the trail and fps keep going", func() {
			d := &display{}
			l.SetDisplay(d)
			now := run(l, 0, 10)

			Expect(l.TogglePause()).To(BeTrue())
			Expect(l.PauseLabel()).To(Equal("Resume"))
			angles, vel := l.Chain().Angles, l.Chain().Velocity
			trailBefore := l.Trail().Len()

			run(l, now, 60)

			Expect(l.Chain().Angles).To(Equal(angles))
			Expect(l.Chain().Velocity).To(Equal(vel))
			Expect(l.Trail().Len()).To(Equal(trailBefore + 60))
			Expect(d.fps).NotTo(BeEmpty())

			Expect(l.TogglePause()).To(BeFalse())
			Expect(l.PauseLabel()).To(Equal("Pause"))
		})
	})

	Describe("reset", func() {
		It("empties the trail and stops the chain", func() {
			run(l, 0, 120)
			l.Reset()

			Expect(l.Trail().Len()).To(BeZero())
			Expect(l.Chain().Velocity).To(Equal([physics.Links]float64{}))
			for _, a := range l.Chain().Angles {
				Expect(a).To(BeNumerically("~", math.Pi/2, 0.8))
			}
		})
	})

	Describe("perturbation", func() {
		It("cuts the trail to at most ceil(60%)", func() {
			for _, n := range []int{1, 7, 100, 333} {
				fresh := newLoop(render.SliderMax)
				fresh.Start(0)
				run(fresh, 0, n)
				before := fresh.Trail().Len()
				fresh.Perturb()
				Expect(fresh.Trail().Len()).To(BeNumerically("<=", int(math.Ceil(0.6*float64(before)))))
				Expect(fresh.Trail().Len()).To(Equal(int(float64(before) * 0.6)))
			}
		})

		It("kicks angles and velocities even when paused", func() {
			kicked := sim.New(sim.Config{View: sim.View{Width: 640, Height: 480}}, dynamo.FixedRand(1), nil)
			kicked.TogglePause()
			angles := kicked.Chain().Angles
			kicked.Perturb()
			for i := 0; i < physics.Links; i++ {
				Expect(kicked.Chain().Angles[i] - angles[i]).To(BeNumerically("~", 0.8, 1e-12))
				Expect(kicked.Chain().Velocity[i]).To(BeNumerically("~", 0.3, 1e-12))
			}
		})

		It("logs the cut at debug level", func() {
			core, logs := observer.New(zapcore.DebugLevel)
			logged := sim.New(sim.Config{View: sim.View{Width: 640, Height: 480}}, dynamo.FixedRand(0.5), zap.New(core))
			run(logged, 0, 10)
			logged.Perturb()

			entries := logs.FilterMessage("perturbed chain").All()
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].ContextMap()).To(HaveKeyWithValue("trail_after", int64(6)))
		})
	})

	Describe("readouts", func() {
		It("emits fps once more than 500ms has passed", func() {
			d := &display{}
			l.SetDisplay(d)
			run(l, 0, 30)
			Expect(d.fps).To(BeEmpty())
			run(l, 30*frame, 1)
			Expect(d.fps).To(Equal([]int{60}))
			Expect(l.Readout().FPS).To(Equal(60))
		})

		It("emits energy every frame with two decimals", func() {
			d := &display{}
			l.SetDisplay(d)
			run(l, 0, 3)
			Expect(d.energy).To(HaveLen(3))
			Expect(d.energy[2]).To(MatchRegexp(`^\d+\.\d{2}$`))
			Expect(d.energy[2]).To(Equal(l.Readout().EnergyText()))
		})

		It("draws the same energy it emits for the frame", func() {
			d := &display{}
			moving := sim.New(sim.Config{
				View:   sim.View{Width: 640, Height: 480},
				Slider: render.SliderDefault,
			}, dynamo.FixedRand(0.9), nil)
			moving.SetDisplay(d)
			moving.Start(0)
			now := run(moving, 0, 200)

			surface := &textSurface{}
			moving.Tick(now+frame, surface)
			emitted := d.energy[len(d.energy)-1]
			Expect(surface.texts).To(ContainElement("Energy " + emitted))
		})

		It("reports 0.00 and 6.60 for the reference poses", func() {
			flat := sim.New(sim.Config{Chain: physics.NewChainWith(physics.DefaultLengths, [physics.Links]float64{})}, dynamo.FixedRand(0.5), nil)
			Expect(flat.Readout().EnergyText()).To(Equal("0.00"))

			h := math.Pi / 2
			side := sim.New(sim.Config{Chain: physics.NewChainWith(physics.DefaultLengths, [physics.Links]float64{h, h, h})}, dynamo.FixedRand(0.5), nil)
			Expect(side.Readout().EnergyText()).To(Equal("6.60"))
		})
	})

	Describe("view", func() {
		It("places the pivot above the center and follows resizes", func() {
			Expect(l.View().Origin()).To(Equal(dynamo.Point{X: 320, Y: 180}))
			l.Resize(1000, 800)
			l.Tick(frame, nil)
			Expect(l.Frame(frame).Origin).To(Equal(dynamo.Point{X: 500, Y: 340}))
		})
	})

	Describe("rendering", func() {
		It("clears once and draws the full scene per frame", func() {
			s := &countingSurface{}
			l.Tick(frame, s)
			Expect(s.clears).To(Equal(1))
			Expect(s.glows).To(Equal(1))
			Expect(s.lines).To(Equal(6))
			Expect(s.discs).To(Equal(5))
		})
	})

	Describe("controls", func() {
		It("applies panel actions", func() {
			l.Apply(render.Action{Kind: render.ActionSlide, Value: 10})
			Expect(l.TrailMax()).To(Equal(400))
			l.Apply(render.Action{Kind: render.ActionPause})
			Expect(l.Paused()).To(BeTrue())
			run(l, 0, 5)
			l.Apply(render.Action{Kind: render.ActionReset})
			Expect(l.Trail().Len()).To(BeZero())
		})
	})
})

var _ = Describe("Interval", func() {
	It("fires once per period of wall clock", func() {
		iv := sim.NewInterval(sim.PerturbEvery)
		iv.Start(0)
		fired := 0
		for now := time.Duration(0); now <= 46*time.Second; now += frame {
			if iv.Due(now) {
				fired++
			}
		}
		Expect(fired).To(Equal(3))
	})

	It("arms itself on the first poll", func() {
		iv := sim.NewInterval(time.Second)
		Expect(iv.Due(5 * time.Second)).To(BeFalse())
		Expect(iv.Next()).To(Equal(6 * time.Second))
	})

	It("fires only once after a long stall", func() {
		iv := sim.NewInterval(time.Second)
		iv.Start(0)
		Expect(iv.Due(10 * time.Second)).To(BeTrue())
		Expect(iv.Due(10*time.Second + time.Millisecond)).To(BeFalse())
		Expect(iv.Next()).To(Equal(11 * time.Second))
	})
})
