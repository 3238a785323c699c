package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/glowpend/internal/render"
	"github.com/san-kum/glowpend/internal/sim"
)

const (
	frameRate       = 60
	historyCapacity = 120

	// logicalHeight is the scene height the canvas is scaled to, tall
	// enough for the pivot lift plus a fully extended chain.
	logicalHeight = 340.0

	defaultCols = 80
	defaultRows = 24
)

type TickMsg time.Time

type PerturbMsg time.Time

// Model hosts a sim.Loop inside a Bubble Tea program. Bubble Tea delivers
// ticks, timer firings and keys through Update one at a time, which keeps
// the loop on a single logical thread.
type Model struct {
	loop    *sim.Loop
	log     *zap.Logger
	start   time.Time
	surface *BrailleSurface
	theme   Theme
	st      styles

	energyHistory []float64
	width, height int
	showHelp      bool
}

// NewModel wraps loop; start anchors the timestamps handed to Tick.
func NewModel(loop *sim.Loop, start time.Time, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	theme := GetTheme(loop.Palette().Name)
	m := Model{
		loop:          loop,
		log:           log,
		start:         start,
		theme:         theme,
		st:            newStyles(theme),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.resize(defaultCols, defaultRows)
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func perturbAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return PerturbMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), perturbAfter(sim.PerturbEvery))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width-panelWidth-4, msg.Height-1)
	case TickMsg:
		m.step(time.Time(msg).Sub(m.start))
		return m, tick()
	case PerturbMsg:
		m.loop.Perturb()
		return m, perturbAfter(sim.PerturbEvery)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctl := m.loop.Controls()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.loop.TogglePause()
	case "r":
		m.loop.Reset()
	case "]", "right", "l":
		m.loop.SetTrailSlider(ctl.Nudge(m.loop.Slider(), 1))
	case "[", "left", "h":
		m.loop.SetTrailSlider(ctl.Nudge(m.loop.Slider(), -1))
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.st = newStyles(m.theme)
		m.loop.SetPalette(render.GetPalette(m.theme.Name))
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// step runs one loop frame and records the energy readout.
func (m *Model) step(now time.Duration) {
	m.loop.Tick(now, m.surface)
	m.energyHistory = append(m.energyHistory, m.loop.Readout().Energy)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// resize rebuilds the canvas for a cols x rows area and rescales the scene
// so its height maps onto logicalHeight.
func (m *Model) resize(cols, rows int) {
	if cols < 10 {
		cols = 10
	}
	if rows < 6 {
		rows = 6
	}
	m.width, m.height = cols, rows
	canvas := NewCanvas(cols, rows)
	_, dotsH := canvas.Dots()
	m.surface = NewBrailleSurface(canvas, logicalHeight/float64(dotsH))
	w, h := m.surface.Size()
	m.loop.Resize(w, h)
}

func (m Model) View() string {
	canvasView := m.st.canvas.Render(m.surface.Canvas.String())

	var s strings.Builder
	s.WriteString(m.st.header.Render("GLOWPEND") + "\n")
	if m.loop.Paused() {
		s.WriteString(m.st.paused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(m.st.status.Render("RUNNING") + "\n\n")
	}

	r := m.loop.Readout()
	s.WriteString(m.st.label.Render("FPS") + m.st.value.Render(fmt.Sprintf("%d", r.FPS)) + "\n")
	s.WriteString(m.st.label.Render("Energy") + m.st.value.Render(r.EnergyText()) + "\n")
	s.WriteString(m.st.label.Render("Trail") + m.st.value.Render(fmt.Sprintf("%d/%d", m.loop.Trail().Len(), m.loop.TrailMax())) + "\n")
	s.WriteString(m.st.label.Render("Length") + m.st.value.Render(sliderBar(m.loop.Slider(), render.SliderMin, render.SliderMax, 16)) + "\n")
	s.WriteString(m.st.label.Render("Theme") + m.st.value.Render(m.theme.Name) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(5), asciigraph.Width(panelWidth-12), asciigraph.Caption("energy"))
		s.WriteString("\n" + m.st.graph.Render(chart) + "\n")
	}

	if m.showHelp {
		s.WriteString(m.st.help.Render("SPACE pause/resume\nR     reset\n[ ]   trail length\nT     theme\nQ     quit"))
	} else {
		s.WriteString(m.st.help.Render(m.loop.PauseLabel() + ":SP  Reset:R  Trail:[ ]  ?:Help"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.st.panel.Render(s.String()))
}

// Run starts the terminal program and blocks until the user quits.
func Run(loop *sim.Loop, log *zap.Logger) error {
	start := time.Now()
	loop.Start(0)
	p := tea.NewProgram(NewModel(loop, start, log), tea.WithAltScreen())
	log.Info("terminal view started")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal view: %w", err)
	}
	log.Info("terminal view stopped", zap.Int64("frames", loop.Frames()))
	return nil
}
