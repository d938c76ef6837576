package ui

import "github.com/charmbracelet/lipgloss"

// Color palette: a single lime accent on grays.
const (
	ColorLime     = "154" // Primary accent (#AFFF00)
	ColorLimeDim  = "106" // Dimmed lime for secondary values
	ColorWhite    = "255" // Headers, important text
	ColorGray     = "245" // Labels
	ColorDarkGray = "238" // Borders, separators
)

// Styles holds all styles used to render records.
type Styles struct {
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Score  lipgloss.Style
	Rule   lipgloss.Style
	Border lipgloss.Style
	Cell   lipgloss.Style
}

// DefaultStyles returns styled components for color terminals.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Value:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Score:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLimeDim)),
		Rule:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// NoColorStyles returns unstyled components for plain mode.
// Cell padding is layout, not color, so it is kept.
func NoColorStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle(),
		Label:  lipgloss.NewStyle(),
		Value:  lipgloss.NewStyle(),
		Score:  lipgloss.NewStyle(),
		Rule:   lipgloss.NewStyle(),
		Border: lipgloss.NewStyle(),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
