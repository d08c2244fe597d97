package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const tickInterval = time.Second

// tick schedules the next redraw. It never touches the store; it only lets
// the view re-read the elapsed time of the running session.
func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
