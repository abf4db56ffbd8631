package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-eq/eq"
	"github.com/cwbudde/algo-eq/internal/cli"
)

const (
	curveRune    = '●'
	spectrumRune = '·'
	gridRune     = '┄'
	axisRune     = '│'
)

var (
	curveStyle    = lipgloss.NewStyle().Foreground(cli.PrimaryColor)
	spectrumStyle = lipgloss.NewStyle().Foreground(cli.MutedColor)
	gridStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B4261"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.AccentColor)
	helpStyle     = lipgloss.NewStyle().Foreground(cli.MutedColor).Italic(true)
)

// View renders the plot, the parameter list and the key help.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render("tokyoeq"))
	b.WriteString("\n")
	b.WriteString(renderPlot(m))
	b.WriteString("\n")
	b.WriteString(renderParameters(m))
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(cli.ErrorStyle.Render("Error: "))
		b.WriteString(m.Err.Error())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ select  ←/→ adjust  H/L coarse  space toggle  r reset  q quit"))

	return b.String()
}

type cell struct {
	r     rune
	style *lipgloss.Style
}

// plotRows rasterises the grid, both analyzer paths and the response curve
// into rows of cells. Later layers overwrite earlier ones.
func plotRows(m Model) [][]cell {
	w, h := m.plotWidth, m.plotHeight
	area := m.plotArea()

	rows := make([][]cell, h)
	for y := range rows {
		rows[y] = make([]cell, w)
		for x := range rows[y] {
			rows[y][x] = cell{r: ' '}
		}
	}

	put := func(x, y float64, r rune, style *lipgloss.Style) {
		col, row := int(math.Floor(x)), int(math.Round(y))
		if col < 0 || col >= w || row < 0 || row >= h {
			return
		}

		rows[row][col] = cell{r: r, style: style}
	}

	for _, db := range eq.GridGains() {
		y := eq.YForGain(area, db)
		for x := range w {
			put(float64(x), y, gridRune, &gridStyle)
		}
	}

	for _, f := range eq.GridFrequencies() {
		x := eq.XForFrequency(area, f)
		for y := range h {
			put(x, float64(y), axisRune, &gridStyle)
		}
	}

	for _, path := range m.spectrum {
		for _, pt := range path {
			put(pt.X, pt.Y, spectrumRune, &spectrumStyle)
		}
	}

	for _, pt := range m.curve {
		put(pt.X, pt.Y, curveRune, &curveStyle)
	}

	return rows
}

func renderPlot(m Model) string {
	var b strings.Builder

	area := m.plotArea()
	labels := make(map[int]string)

	for _, db := range eq.GridGains() {
		labels[int(math.Round(eq.YForGain(area, db)))] = eq.GainLabel(db)
	}

	for y, row := range plotRows(m) {
		fmt.Fprintf(&b, "%4s ", labels[y])

		for _, c := range row {
			if c.style == nil {
				b.WriteRune(c.r)
				continue
			}

			b.WriteString(c.style.Render(string(c.r)))
		}

		b.WriteString("\n")
	}

	b.WriteString("     ")
	b.WriteString(frequencyAxis(area, m.plotWidth))

	return b.String()
}

// frequencyAxis places grid frequency labels under their columns, skipping
// labels that would overlap.
func frequencyAxis(area eq.Area, width int) string {
	line := []rune(strings.Repeat(" ", width))
	next := 0

	for _, f := range eq.GridFrequencies() {
		label := []rune(eq.FrequencyLabel(f))
		x := min(int(eq.XForFrequency(area, f)), width-len(label))

		if x < next || x < 0 {
			continue
		}

		copy(line[x:], label)
		next = x + len(label) + 1
	}

	return string(line)
}

func renderParameters(m Model) string {
	values := m.params.Values()

	rows := make([]string, 0, len(m.ids))
	for i, id := range m.ids {
		text := fmt.Sprintf("%-17s %s", string(id), eq.DisplayString(id, values[string(id)]))
		if i == m.Selected {
			rows = append(rows, selectedStyle.Render("> "+text))
			continue
		}

		rows = append(rows, "  "+text)
	}

	return strings.Join(rows, "\n")
}
