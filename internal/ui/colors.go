// Package ui holds shared terminal rendering helpers: the color palette,
// status symbols, sparklines, and value formatting.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication, using ANSI codes for broad
// terminal compatibility.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy.
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// StateColor maps a server power state string to its indicator color.
func StateColor(state string) lipgloss.Color {
	switch state {
	case "running":
		return ColorSuccess
	case "starting", "stopping":
		return ColorWarning
	case "offline":
		return ColorError
	default:
		return ColorMuted
	}
}
