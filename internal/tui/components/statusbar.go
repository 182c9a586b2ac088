package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

// Flash is a one-line message shown in the status bar after an action.
type Flash struct {
	Text string
	Err  bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// last flash message in the middle and context on the right.
func RenderStatusBar(width int, hints string, flash Flash, right string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	flashStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
	if flash.Err {
		flashStyle = flashStyle.Foreground(t.Red)
	}

	left := base.Render(" " + hints)
	if flash.Text != "" {
		left += base.Render("  ") + flashStyle.Render(flash.Text)
	}
	right = base.Render(right + " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Drop the hints before the flash message.
		left = flashStyle.Render(" " + flash.Text)
		padding = max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	}

	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(
		left + base.Render(strings.Repeat(" ", padding)) + right)
}
