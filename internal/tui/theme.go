package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines a colorblind-friendly color scheme
// Using a palette that works well for all forms of color blindness
type Theme struct {
	// Primary colors
	Blue      lipgloss.Color
	Yellow    lipgloss.Color
	Black     lipgloss.Color
	White     lipgloss.Color
	DarkBlue  lipgloss.Color
	LightBlue lipgloss.Color
	Orange    lipgloss.Color

	// Semantic colors (derived from primary)
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
	Default lipgloss.Color

	// Base styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Bold     lipgloss.Style
	Faint    lipgloss.Style

	// Component styles
	SuccessText lipgloss.Style
	ErrorText   lipgloss.Style
}

// NewTheme creates a new colorblind-friendly theme
func NewTheme() *Theme {
	t := &Theme{
		// Primary colors - colorblind friendly palette
		Blue:      "#0072B2", // Dark blue - distinctive in all color vision deficiencies
		Yellow:    "#E69F00", // Yellow - visible in most color vision deficiencies
		Black:     "#000000",
		White:     "#FFFFFF",
		DarkBlue:  "#004C99",
		LightBlue: "#56B4E9", // Light blue - visible in all types
		Orange:    "#D55E00", // Reddish/orange - visible in most types

		// Semantic colors
		Success: "#009E73", // Bluish green - better than pure green for colorblindness
		Warning: "#E69F00", // Yellow - good for warnings
		Error:   "#D55E00", // Red/orange - better than pure red for colorblindness
		Info:    "#0072B2", // Dark blue - good for info
		Default: "#999999", // Gray - neutral
	}

	// Initialize styles
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Blue)).
		MarginBottom(1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.DarkBlue)).
		MarginBottom(1)

	t.Text = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Black))

	t.Bold = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Black))

	t.Faint = lipgloss.NewStyle().
		Faint(true).
		Foreground(lipgloss.Color(t.Default))

	// Component styles
	t.SuccessText = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Success))

	t.ErrorText = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Error))

	return t
}
