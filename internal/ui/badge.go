package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Badge renders a short inverse label for a failure outcome such as
// "overflow" or "cast". Under NoColorTheme it renders as [label].
func Badge(outcome string) string {
	theme := GetCurrentTheme()
	label := strings.ToUpper(strings.ReplaceAll(outcome, "_", " "))
	if theme.Name == NoColorTheme.Name {
		return "[" + label + "]"
	}

	palette := theme.Badge
	var bg lipgloss.TerminalColor
	switch outcome {
	case "overflow":
		bg = palette.Overflow
	case "underflow":
		bg = palette.Underflow
	case "divide_by_zero":
		bg = palette.DivideByZero
	default:
		bg = palette.Cast
	}

	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(palette.Text).
		Background(bg).
		Render(label)
}
