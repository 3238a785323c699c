package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/export"
	"github.com/san-kum/glowpend/internal/logging"
	"github.com/san-kum/glowpend/internal/sim"
	"github.com/san-kum/glowpend/internal/storage"
)

func newSnapshotCmd() *cobra.Command {
	var (
		frames int
		rate   float64
		out    string
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the frame after N headless frames to SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames <= 0 || rate <= 0 {
				return fmt.Errorf("frames %d at %.1f Hz: %w", frames, rate, dynamo.ErrInvalidConfig)
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
			svg := export.NewSVG(float64(cfg.Width), float64(cfg.Height))
			renderSnapshot(loop, svg, frames, rate)

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}
			defer f.Close()
			if _, err := svg.WriteTo(f); err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}
			log.Info("snapshot written", zap.String("path", out), zap.Int("frames", frames))
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 300, "frames to run before the snapshot")
	cmd.Flags().Float64Var(&rate, "rate", 60, "frame rate in Hz")
	cmd.Flags().StringVar(&out, "out", "glowpend.svg", "output file")
	return cmd
}

// renderSnapshot runs frames-1 headless frames and draws the last onto s.
func renderSnapshot(loop *sim.Loop, s *export.SVG, frames int, rate float64) {
	period := time.Duration(float64(time.Second) / rate)
	loop.Start(0)
	for i := 0; i < frames-1; i++ {
		loop.Tick(time.Duration(i)*period, nil)
	}
	loop.Tick(time.Duration(frames-1)*period, s)
}

func newRunsCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored trace runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIME\tSEED\tFRAMES\tRATE\tPERTURBS\tTHEME\tENERGY")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0f\t%d\t%s\t%.2f\n",
					r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Seed, r.Frames, r.Rate, r.Perturbs, r.Palette, r.FinalEnergy)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".glowpend", "run directory")
	return cmd
}
