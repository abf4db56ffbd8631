package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RefreshRate is how often the display context polls the processor.
const RefreshRate = 60

// TickMsg drives the display refresh.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/RefreshRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
