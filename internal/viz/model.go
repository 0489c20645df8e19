package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300

	// Terminal cell of the canvas's top-left corner, from canvasStyle's
	// padding.
	canvasLeft = 2
	canvasTop  = 1
)

// Tunable lists the knobs the up and down keys adjust.
var Tunable = []string{
	"physics_accuracy",
	"gravity",
	"tear_distance",
	"mouse_influence",
	"mouse_cut",
}

type TickMsg time.Time

// Model is the terminal host: it steps a simulation on a frame timer,
// draws it on a braille canvas and turns terminal mouse events into
// pointer input.
type Model struct {
	sim      *sim.Simulation
	canvas   *Canvas
	proj     Projection
	theme    Theme
	title    string
	fps      int
	running  bool
	selected int
	status   string

	sag     *metrics.Sag
	stretch *metrics.Stretch

	last           sim.TickReport
	sagHistory     []float64
	stretchHistory []float64
}

func NewModel(s *sim.Simulation, title string, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	m := Model{
		sim:     s,
		canvas:  NewCanvas(width, height),
		proj:    Fit(s.Space(), width, height),
		theme:   ThemeLinen,
		title:   title,
		fps:     fps,
		running: true,
		sag:     metrics.NewSag(),
		stretch: metrics.NewStretch(),
	}
	s.AddMetric(m.sag)
	s.AddMetric(m.stretch)
	m.last.Live = s.Grid().LiveLinks()
	return m
}

// Run starts the terminal host and blocks until the user quits.
func Run(s *sim.Simulation, title string, fps int) error {
	p := tea.NewProgram(NewModel(s, title, fps), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "n":
			if !m.running {
				m.step()
			}
		case "tab":
			m.selected = (m.selected + 1) % len(Tunable)
		case "up", "k":
			m.adjust(1)
		case "down", "j":
			m.adjust(-1)
		case "t":
			m.theme = NextTheme(m.theme)
		}
	case tea.MouseMsg:
		m.pointer(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	r, err := m.sim.Tick()
	if err != nil {
		m.running = false
		m.status = err.Error()
		return
	}
	m.last = r

	m.sagHistory = appendCapped(m.sagHistory, m.sag.Last())
	m.stretchHistory = appendCapped(m.stretchHistory, m.stretch.Last())
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) reset() {
	if err := m.sim.Reset(); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.last = sim.TickReport{Live: m.sim.Grid().LiveLinks()}
	m.sagHistory = m.sagHistory[:0]
	m.stretchHistory = m.stretchHistory[:0]
}

// adjust nudges the selected knob. Accuracy moves in whole passes; the
// rest scale by 10%.
func (m *Model) adjust(dir int) {
	key := Tunable[m.selected]
	p := m.sim.Params()
	v, _ := p.Get(key)

	switch {
	case key == "physics_accuracy":
		v += float64(dir)
	case dir > 0:
		v *= 1.1
	default:
		v /= 1.1
	}

	next, err := p.With(key, v)
	if err == nil {
		err = m.sim.Reconfigure(next)
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

// pointer maps a terminal mouse event to simulation space. The left
// button drags; right and middle cut.
func (m *Model) pointer(msg tea.MouseMsg) {
	pos := m.proj.FromCell(msg.X-canvasLeft, msg.Y-canvasTop)

	switch msg.Action {
	case tea.MouseActionPress:
		var b cloth.Button
		switch msg.Button {
		case tea.MouseButtonLeft:
			b = cloth.ButtonPrimary
		case tea.MouseButtonRight, tea.MouseButtonMiddle:
			b = cloth.ButtonOther
		default:
			return
		}
		m.sim.UpdatePointer(func(p *cloth.Pointer) { p.Press(b, pos[0], pos[1]) })
	case tea.MouseActionMotion:
		m.sim.UpdatePointer(func(p *cloth.Pointer) { p.MoveTo(pos[0], pos[1]) })
	case tea.MouseActionRelease:
		m.sim.UpdatePointer(func(p *cloth.Pointer) {
			p.MoveTo(pos[0], pos[1])
			p.Release()
		})
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.DrawGrid(m.sim.Grid(), m.proj)
	if ptr := m.sim.Pointer(); ptr.Pressed && ptr.Button == cloth.ButtonOther {
		m.canvas.DrawCross(ptr.Pos, m.proj)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	clothStyle := canvasStyle.Foreground(m.theme.Cloth)
	canvasView := clothStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n\n")

	if m.running {
		s.WriteString(statusRunning.Render("RUNNING"))
	} else {
		s.WriteString(statusPaused.Render("PAUSED"))
	}
	s.WriteString("\n")
	if m.status != "" {
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Alert).Render(m.status) + "\n")
	}
	s.WriteString("\n")

	if len(m.sagHistory) > 1 {
		chart := asciigraph.Plot(m.sagHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Sag"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	g := m.sim.Grid()
	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d", m.sim.TickCount())) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", float64(m.sim.TickCount())*g.Params().Dt)) + "\n")
	s.WriteString(labelStyle.Render("Points") + valueStyle.Render(fmt.Sprintf("%d", g.Len())) + "\n")

	frac := 0.0
	if g.LinkCount() > 0 {
		frac = float64(m.last.Live) / float64(g.LinkCount())
	}
	s.WriteString(labelStyle.Render("Links") + ProgressBar(frac, 16) + valueStyle.Render(fmt.Sprintf(" %d", m.last.Live)) + "\n")
	s.WriteString(labelStyle.Render("Stretch") + Sparkline(m.stretchHistory, 16) + valueStyle.Render(fmt.Sprintf(" %.3f", m.stretch.Last())) + "\n")

	s.WriteString("\nPARAMETERS\n")
	p := m.sim.Params()
	for i, k := range Tunable {
		v, _ := p.Get(k)
		line := fmt.Sprintf("%-16s %8.2f", k, v)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString(paramStyle.Render("  "+line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset N:Step Q:Quit\nTab:Select ↑↓:Tune T:Theme\nLeft:Drag Right:Cut"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
