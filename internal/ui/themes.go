package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output.
// Each ANSI field contains an escape code for the corresponding color category;
// Badge holds the lipgloss colors used for failure badges.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates a value that was computed.
	Success string
	// Warning is used for underflow and hints.
	Warning string
	// Error indicates failures.
	Error string
	// Bold is the escape code for bold text.
	Bold string
	// Reset clears all formatting.
	Reset string
	// Badge colors failure badges by kind.
	Badge BadgePalette
}

// BadgePalette holds lipgloss colors for the failure badges.
type BadgePalette struct {
	Text         lipgloss.TerminalColor
	Overflow     lipgloss.TerminalColor
	Underflow    lipgloss.TerminalColor
	DivideByZero lipgloss.TerminalColor
	Cast         lipgloss.TerminalColor
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Bold:      "\033[1m",
		Reset:     "\033[0m",
		Badge: BadgePalette{
			Text:         lipgloss.Color("#000000"),
			Overflow:     lipgloss.Color("#FF4444"),
			Underflow:    lipgloss.Color("#FFB347"),
			DivideByZero: lipgloss.Color("#BB88FF"),
			Cast:         lipgloss.Color("#4488FF"),
		},
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Bold:      "\033[1m",
		Reset:     "\033[0m",
		Badge: BadgePalette{
			Text:         lipgloss.Color("#FFFFFF"),
			Overflow:     lipgloss.Color("#AA0000"),
			Underflow:    lipgloss.Color("#AA5500"),
			DivideByZero: lipgloss.Color("#5500AA"),
			Cast:         lipgloss.Color("#0044AA"),
		},
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or -no-color flag is provided.
	NoColorTheme = Theme{
		Name: "none",
		Badge: BadgePalette{
			Text:         lipgloss.NoColor{},
			Overflow:     lipgloss.NoColor{},
			Underflow:    lipgloss.NoColor{},
			DivideByZero: lipgloss.NoColor{},
			Cast:         lipgloss.NoColor{},
		},
	}

	// currentTheme is the active theme used throughout the application.
	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used by tests to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "none". Unknown names select dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}

	// Any value, even empty, disables colors.
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}

	currentTheme = DarkTheme
}
