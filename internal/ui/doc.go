// Package ui provides theme and color support for checkedcalc output.
// It defines color schemes, ANSI escape code helpers and the lipgloss badges
// used to flag failed evaluations.
package ui
