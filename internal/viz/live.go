// Package viz provides the terminal control room: a live view of the
// beamline with RPM and pressure traces, the kinematic readout and the
// beam stability lamp.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ecoatom/internal/beamline"
	"github.com/san-kum/ecoatom/internal/facility"
)

const (
	graphWidth      = 70
	graphHeight     = 8
	historyCapacity = 600
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	stableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	unstableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true).Blink(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model runs the beamline one tick per frame and renders the control room.
type Model struct {
	line    *beamline.Beamline
	cfg     beamline.RunConfig
	fps     int
	step    int
	rec     facility.TickRecord
	rpmHist []float64
	// pressure history in log10(Pa) so the pump-down curve stays readable
	pressureHist []float64
	eventCount   int
	lastFrags    int
	running      bool
	done         bool
}

// NewModel initializes the live view for a configured beamline.
func NewModel(line *beamline.Beamline, cfg beamline.RunConfig, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		line:         line,
		cfg:          cfg,
		fps:          fps,
		rpmHist:      make([]float64, 0, historyCapacity),
		pressureHist: make([]float64, 0, historyCapacity),
		running:      true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
		return m, nil

	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func (m *Model) advance() {
	if m.step >= m.cfg.Steps {
		m.done = true
		return
	}

	m.rec = m.line.Tick(m.step, m.cfg.TimeStep)

	m.rpmHist = append(m.rpmHist, m.rec.RPM)
	m.pressureHist = append(m.pressureHist, math.Log10(m.rec.Pressure))
	if len(m.rpmHist) > historyCapacity {
		m.rpmHist = m.rpmHist[1:]
		m.pressureHist = m.pressureHist[1:]
	}

	if m.step != 0 && m.step%m.cfg.EventIntervalSteps == 0 {
		ev := m.line.Emit(m.rec)
		m.eventCount++
		m.lastFrags = len(ev.Fragments)
	}

	m.step++
}

func (m Model) View() string {
	var b strings.Builder

	beam := m.line.Beam()
	b.WriteString(headerStyle.Render(fmt.Sprintf("ecoatom control room — beam %s (Z=%d)", beam.Symbol, beam.AtomicNumber)))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("tick", fmt.Sprintf("%d / %d  (t = %.1f s)", m.step, m.cfg.Steps, m.rec.Elapsed))
	row("rpm", fmt.Sprintf("%.1f", m.rec.RPM))
	row("omega", fmt.Sprintf("%.2f rad/s", m.rec.AngularVelocity))
	row("v_tan", fmt.Sprintf("%.2f m/s", m.rec.TangentialVelocity))
	row("a_cf", fmt.Sprintf("%.2e m/s²", m.rec.CentrifugalAcceleration))
	row("pressure", fmt.Sprintf("%.3e Pa", m.rec.Pressure))
	row("events", fmt.Sprintf("%d (last: %d fragments)", m.eventCount, m.lastFrags))

	lamp := stableStyle.Render("● BEAM STABLE")
	if m.step > 0 && !m.rec.Stable {
		lamp = unstableStyle.Render("● BEAM UNSTABLE")
	}
	b.WriteString("\n" + lamp + "\n")

	if len(m.rpmHist) > 1 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.rpmHist,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("rpm"),
		)))
		b.WriteString("\n")
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.pressureHist,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("log10 pressure (Pa)"),
		)))
		b.WriteString("\n")
	}

	status := "running"
	if !m.running {
		status = "paused"
	}
	if m.done {
		status = "complete"
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("[%s]  space: pause/resume  q: quit", status)))

	return b.String()
}
