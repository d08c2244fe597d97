package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type color string

const (
	colorRed    color = "\033[31m"
	colorGreen  color = "\033[32m"
	colorYellow color = "\033[33m"
	colorCyan   color = "\033[36m"
	colorReset  color = "\033[0m"
	dash              = '─'
)

var (
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Bold(true)
	timerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

func line(length int) string {
	return strings.Repeat(string(dash), max(0, length))
}

func colorize(c color, s string) string {
	return string(c) + s + string(colorReset)
}

// bar draws a proportional bar of at most width cells.
func bar(value, maxValue, width int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := max(1, value*width/maxValue)
	return strings.Repeat("█", min(n, width))
}
