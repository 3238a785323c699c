package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/glowpend/internal/config"
	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/logging"
	"github.com/san-kum/glowpend/internal/sim"
	"github.com/san-kum/glowpend/internal/storage"
)

type traceOptions struct {
	Frames       int
	Rate         float64
	PauseAt      int
	PerturbEvery time.Duration
	SaveDir      string
}

type traceResult struct {
	Energy   []float64
	Samples  []storage.Sample
	Perturbs int
	Last     time.Duration
	FPS      int
}

// fpsSink keeps the last FPS sample the loop reported.
type fpsSink struct{ fps int }

func (f *fpsSink) SetFPS(v int)     { f.fps = v }
func (f *fpsSink) SetEnergy(string) {}

func (o traceOptions) validate() error {
	if o.Frames <= 0 || o.Rate <= 0 {
		return fmt.Errorf("frames %d at %.1f Hz: %w", o.Frames, o.Rate, dynamo.ErrInvalidConfig)
	}
	if o.PerturbEvery <= 0 {
		return fmt.Errorf("perturb-every %s: %w", o.PerturbEvery, dynamo.ErrInvalidConfig)
	}
	return nil
}

func newTraceCmd() *cobra.Command {
	opts := traceOptions{}
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "run the loop headless on synthetic timestamps",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, closeLog, err := logging.NewStderr(cfg.Log)
			if err != nil {
				return &dynamo.InitError{Component: "logging", Wrapped: err}
			}
			defer closeLog()

			loop := newLoop(cfg, log)
			res := runTrace(loop, opts)
			log.Info("trace finished", zap.Int("frames", opts.Frames), zap.Int("perturbations", res.Perturbs))
			if err := printTrace(cmd.OutOrStdout(), loop, res); err != nil {
				return err
			}
			if opts.SaveDir == "" {
				return nil
			}
			id, err := saveTrace(storage.New(opts.SaveDir), cfg, opts, res)
			if err != nil {
				return fmt.Errorf("save trace: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nsaved %s\n", id)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Frames, "frames", 600, "frames to run")
	cmd.Flags().Float64Var(&opts.Rate, "rate", 60, "frame rate in Hz")
	cmd.Flags().IntVar(&opts.PauseAt, "pause-at", -1, "pause before this frame (-1 never)")
	cmd.Flags().DurationVar(&opts.PerturbEvery, "perturb-every", sim.PerturbEvery, "perturbation period")
	cmd.Flags().StringVar(&opts.SaveDir, "save", "", "store the run under this directory")
	return cmd
}

// runTrace ticks loop opts.Frames times without a surface. Frame i runs at
// i/Rate seconds, and perturbations fire from an Interval on the same clock.
func runTrace(loop *sim.Loop, opts traceOptions) traceResult {
	period := time.Duration(float64(time.Second) / opts.Rate)
	sink := &fpsSink{}
	loop.SetDisplay(sink)
	defer loop.SetDisplay(nil)

	perturb := sim.NewInterval(opts.PerturbEvery)
	perturb.Start(0)
	loop.Start(0)

	res := traceResult{
		Energy:  make([]float64, 0, opts.Frames),
		Samples: make([]storage.Sample, 0, opts.Frames),
	}
	for i := 0; i < opts.Frames; i++ {
		now := time.Duration(i) * period
		if i == opts.PauseAt && !loop.Paused() {
			loop.TogglePause()
		}
		if perturb.Due(now) {
			loop.Perturb()
			res.Perturbs++
		}
		loop.Tick(now, nil)
		chain := loop.Chain()
		energy := loop.Readout().Energy
		res.Energy = append(res.Energy, energy)
		res.Samples = append(res.Samples, storage.Sample{
			T:        now,
			Angles:   chain.Angles,
			Velocity: chain.Velocity,
			Energy:   energy,
			TrailLen: loop.Trail().Len(),
		})
		res.Last = now
	}
	res.FPS = sink.fps
	return res
}

func saveTrace(st *storage.Store, cfg *config.Config, opts traceOptions, res traceResult) (string, error) {
	if err := st.Init(); err != nil {
		return "", err
	}
	final := 0.0
	if n := len(res.Energy); n > 0 {
		final = res.Energy[n-1]
	}
	return st.Save(storage.RunMetadata{
		Seed:        cfg.Seed,
		Frames:      opts.Frames,
		Rate:        opts.Rate,
		Perturbs:    res.Perturbs,
		Palette:     cfg.Theme,
		TrailSlider: cfg.TrailSlider,
		FinalEnergy: final,
	}, res.Samples)
}

func printTrace(out io.Writer, loop *sim.Loop, res traceResult) error {
	if len(res.Energy) > 1 {
		graph := asciigraph.Plot(res.Energy,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("energy"),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	chain := loop.Chain()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAMES\tSIM TIME\tFPS\tTRAIL\tPERTURBS\tPAUSED")
	fmt.Fprintf(w, "%d\t%s\t%d\t%d/%d\t%d\t%t\n",
		loop.Frames(), res.Last, res.FPS, loop.Trail().Len(), loop.TrailMax(), res.Perturbs, loop.Paused())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PARAM\tVALUE")
	params := chain.GetParams()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, params[name])
	}
	fmt.Fprintln(w)
	for _, m := range loop.Metrics() {
		fmt.Fprintf(w, "%s\t%.2f\n", m.Name(), m.Value())
	}
	fmt.Fprintf(w, "peak energy\t%.2f\n", loop.PeakEnergy())
	return w.Flush()
}
