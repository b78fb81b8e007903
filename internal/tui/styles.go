// Package tui renders operation results for the terminal and asks for
// confirmation before destructive operations.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	warningColor = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	cyanColor    = lipgloss.Color("#06B6D4")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Foreground(cyanColor)

	okStyle = lipgloss.NewStyle().
		Foreground(successColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	deleteStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
)

// Title renders a section heading.
func Title(s string) string { return titleStyle.Render(s) }

// Warning renders a warning line.
func Warning(s string) string { return warnStyle.Render("! " + s) }

// Success renders a confirmation line.
func Success(s string) string { return okStyle.Render("✓ " + s) }

// Muted renders secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// Field renders an aligned "label value" line.
func Field(label string, value interface{}) string {
	return labelStyle.Render(label) + valueStyle.Render(fmtValue(value))
}
