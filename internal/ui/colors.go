// Package ui holds console helpers for the one-shot commands: colors,
// symbols, and simple table rendering. The live dashboard has its own
// styling in internal/monitor.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication, using ANSI codes for
// terminal compatibility.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)
