// Package tui is the terminal control surface of tokyoeq. It edits the
// equalizer parameters from the keyboard and redraws the response curve and
// analyzer spectrum on a 60 Hz timer.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-eq/eq"
)

// Logf receives debug messages.
type Logf func(format string, args ...any)

const (
	defaultPlotWidth  = 72
	defaultPlotHeight = 16
	minPlotWidth      = 20
	minPlotHeight     = 6

	// rows taken by header, parameter list and help
	chromeRows = 17
)

// Model is the bubbletea model. It runs in the display context of the
// processor and is the only caller of RefreshUI.
type Model struct {
	proc   *eq.Processor
	params eq.FilterParameters
	ids    []eq.ParamID

	Selected int

	// Terminal dimensions
	Width  int
	Height int

	plotWidth  int
	plotHeight int

	curve     []eq.Point
	analyzers [2]*spectrum.Analyzer
	paths     [2]spectrum.PathGenerator
	spectrum  [2][]spectrum.Point

	Err  error
	logf Logf
}

// NewModel returns a model controlling proc, which should already be
// prepared. logf may be nil; opts configure both channel analyzers.
func NewModel(proc *eq.Processor, logf Logf, opts ...spectrum.AnalyzerOption) Model {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	m := Model{
		proc:       proc,
		params:     proc.Parameters(),
		ids:        eq.ParamIDs(),
		plotWidth:  defaultPlotWidth,
		plotHeight: defaultPlotHeight,
		logf:       logf,
	}

	for ch := range m.analyzers {
		a, err := spectrum.NewAnalyzer(proc.SampleRate(), opts...)
		if err != nil {
			m.Err = err
			break
		}

		m.analyzers[ch] = a
	}

	m.rebuildCurve()

	return m
}

// Init starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Parameters returns the parameter set the model last published.
func (m Model) Parameters() eq.FilterParameters {
	return m.params
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.plotWidth = max(msg.Width-8, minPlotWidth)
		m.plotHeight = max(msg.Height-chromeRows, minPlotHeight)
		m.logf("[TUI] window %dx%d, plot %dx%d", m.Width, m.Height, m.plotWidth, m.plotHeight)
		m.rebuildCurve()

	case TickMsg:
		m.refresh()
		return m, tick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.Selected = (m.Selected + len(m.ids) - 1) % len(m.ids)
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(m.ids)
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "shift+left", "H":
		m.nudge(-10)
	case "shift+right", "L":
		m.nudge(10)
	case " ", "enter":
		m.nudge(1)
	case "r":
		if m.publish(eq.Defaults()) {
			m.logf("[TUI] reset to defaults")
		}
	}

	return m, nil
}

// SelectedID returns the parameter under the cursor.
func (m Model) SelectedID() eq.ParamID {
	return m.ids[m.Selected]
}

func (m *Model) nudge(steps int) {
	id := m.SelectedID()
	if m.publish(m.params.Nudge(id, steps)) {
		m.logf("[TUI] %s = %s", id, eq.DisplayString(id, m.params.Values()[string(id)]))
	}
}

func (m *Model) publish(params eq.FilterParameters) bool {
	if err := m.proc.UpdateParameters(params); err != nil {
		m.Err = err
		m.logf("[TUI] update rejected: %v", err)

		return false
	}

	m.params = params
	m.Err = nil

	return true
}

// refresh is the 60 Hz display work: pick up published coefficients and
// feed the analyzers.
func (m *Model) refresh() {
	if m.proc.RefreshUI() {
		m.rebuildCurve()
	}

	area := m.plotArea()

	for ch, a := range m.analyzers {
		if a == nil {
			continue
		}

		if a.Drain(m.proc.AnalyzerFIFO(eq.Channel(ch))) == 0 {
			continue
		}

		bins, err := a.Compute()
		if err != nil {
			m.Err = err
			continue
		}

		m.spectrum[ch] = m.paths[ch].Generate(bins, area, a.BinWidth(), a.FloorDB())
	}
}

func (m *Model) rebuildCurve() {
	m.curve = m.curve[:0]
	for pt := range m.proc.ResponseCurveIn(m.plotArea()) {
		m.curve = append(m.curve, pt)
	}
}

func (m Model) plotArea() eq.Area {
	return eq.Area{Width: float64(m.plotWidth), Height: float64(m.plotHeight - 1)}
}
