// Package viz renders the particle population in the terminal: a braille
// pixel canvas plus a live latency panel.
package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 200
)

type TickMsg time.Time

// Model steps the simulation once per UI tick and draws population plus
// latency statistics. Everything runs on the bubbletea goroutine, so the
// latency accumulator keeps its single owner.
type Model struct {
	cfg     *config.Config
	set     *particle.Set
	stepper *physics.Stepper
	lat     *metrics.Latency
	canvas  *Canvas

	t          float64
	running    bool
	latHistory []float64
}

// NewModel seeds a population from cfg and prepares the live view.
func NewModel(cfg *config.Config) Model {
	rng := rand.New(rand.NewSource(cfg.Seed))
	return Model{
		cfg:        cfg,
		set:        particle.NewSet(cfg.Particles, cfg.Boundary, cfg.Speed, rng),
		stepper:    physics.NewStepper(cfg.Boundary),
		lat:        metrics.NewLatency(),
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		running:    true,
		latHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the physics and records its cost.
func (m *Model) step() {
	start := time.Now()
	m.stepper.Step(m.set, m.cfg.Dt)
	m.lat.Record(time.Since(start))
	m.t += float64(m.cfg.Dt)

	m.latHistory = append(m.latHistory, float64(m.lat.Instant().Microseconds()))
	if len(m.latHistory) > historyCapacity {
		m.latHistory = m.latHistory[1:]
	}
}

// reset rebuilds the population from the configured seed and starts the
// accumulator over.
func (m *Model) reset() {
	rng := rand.New(rand.NewSource(m.cfg.Seed))
	m.set = particle.NewSet(m.cfg.Particles, m.cfg.Boundary, m.cfg.Speed, rng)
	m.lat.Reset()
	m.t = 0
	m.latHistory = m.latHistory[:0]
}

// draw projects the domain onto the canvas sub-pixel grid.
func (m *Model) draw() {
	m.canvas.Clear()

	pw, ph := m.canvas.PixelSize()
	sx := float32(pw-1) / m.cfg.Boundary
	sy := float32(ph-1) / m.cfg.Boundary

	m.canvas.DrawRect(0, 0, pw-1, ph-1)
	for _, p := range m.set.Particles() {
		m.canvas.Set(int(p.X*sx), int(p.Y*sy))
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	snap := m.lat.Snapshot()
	var s strings.Builder
	s.WriteString(headerStyle.Render("PARTSIM") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.latHistory) > 1 {
		chart := asciigraph.Plot(m.latHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("step latency (us)"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", m.set.Len())) + "\n")
	s.WriteString(labelStyle.Render("Instant") + valueStyle.Render(fmt.Sprintf("%d us", snap.Last.Microseconds())) + "\n")
	s.WriteString(labelStyle.Render("Average") + valueStyle.Render(fmt.Sprintf("%d us", snap.Average.Microseconds())) + "\n")
	s.WriteString(labelStyle.Render("Max") + valueStyle.Render(fmt.Sprintf("%d us", snap.Max.Microseconds())) + "\n")
	s.WriteString(labelStyle.Render("Steps/sec") + valueStyle.Render(fmt.Sprintf("%.0f", snap.StepsPerSecond())) + "\n")
	s.WriteString(labelStyle.Render("Mean speed") + valueStyle.Render(fmt.Sprintf("%.1f", physics.MeanSpeed(m.set))) + "\n")
	s.WriteString(labelStyle.Render("Spread") + valueStyle.Render(fmt.Sprintf("%.1f", physics.Spread(m.set))) + "\n")

	s.WriteString(helpStyle.Render("\nSP:Pause  R:Reset  Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the live view and blocks until the user quits.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg))
	_, err := p.Run()
	return err
}
