package main

import (
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/glowpend/internal/config"
	"github.com/san-kum/glowpend/internal/dynamo"
	"github.com/san-kum/glowpend/internal/game"
	"github.com/san-kum/glowpend/internal/gui"
	"github.com/san-kum/glowpend/internal/logging"
	"github.com/san-kum/glowpend/internal/render"
	"github.com/san-kum/glowpend/internal/sim"
	"github.com/san-kum/glowpend/internal/viz"
)

var (
	configFile string
	preset     string
	backend    string
	theme      string
	seed       int64
	width      int
	height     int
	slider     float64
	logLevel   string
	logFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "glowpend",
		Short:        "glowing triple pendulum",
		SilenceUsage: true,
		RunE:         runView,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.PersistentFlags().Float64Var(&slider, "trail", render.SliderDefault, "trail length slider (0-20)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLevel, "log level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "renderer: gui, ebiten or tui")
	rootCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	rootCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes and presets",
		RunE:  listThemes,
	}

	rootCmd.AddCommand(themesCmd, newTraceCmd(), newSnapshotCmd(), newRunsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers the config file, the preset and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" && !cfg.ApplyPreset(preset) {
		return nil, fmt.Errorf("preset %q: %w", preset, dynamo.ErrInvalidConfig)
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("trail") {
		cfg.TrailSlider = slider
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Seed = cfg.ResolveSeed()
	return cfg, nil
}

func newLoop(cfg *config.Config, log *zap.Logger) *sim.Loop {
	rng := rand.New(rand.NewSource(cfg.Seed))
	return sim.New(sim.Config{
		View:    sim.View{Width: float64(cfg.Width), Height: float64(cfg.Height)},
		Slider:  cfg.TrailSlider,
		Palette: cfg.Palette(),
	}, rng, log)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var (
		log      *zap.Logger
		closeLog func() error
	)
	if cfg.Backend == "tui" {
		log, closeLog, err = logging.Quiet(cfg.Log)
	} else {
		log, closeLog, err = logging.NewStderr(cfg.Log)
	}
	if err != nil {
		return &dynamo.InitError{Component: "logging", Wrapped: err}
	}
	defer closeLog()

	loop := newLoop(cfg, log)
	log.Info("starting",
		zap.String("backend", cfg.Backend),
		zap.String("theme", cfg.Theme),
		zap.Int64("seed", cfg.Seed),
		zap.Float64("trail_slider", cfg.TrailSlider))

	switch cfg.Backend {
	case "gui":
		return gui.NewApp(loop, cfg.Title, cfg.Width, cfg.Height, cfg.TargetFPS, log).Run()
	case "ebiten":
		return game.Run(loop, cfg.Title, cfg.Width, cfg.Height, cfg.TargetFPS, log)
	case "tui":
		return viz.Run(loop, log)
	}
	return fmt.Errorf("backend %q: %w", cfg.Backend, dynamo.ErrUnknownBackend)
}

func listThemes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THEME\tTRAIL HUE\tARM CORE")
	for _, name := range render.PaletteNames() {
		p := render.GetPalette(name)
		fmt.Fprintf(w, "%s\t%.0f±%.0f\t%s\n", name, p.TrailHue, p.TrailHueSwing, p.Cores[0].Color.CSS())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PRESET\tTHEME\tTRAIL")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%.0f\n", name, p.Theme, p.TrailSlider)
	}
	return w.Flush()
}
