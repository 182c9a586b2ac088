package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

// RenderUnitBar renders the unit selector: every unit name, the active one
// highlighted. Names that do not fit are elided around the active unit.
func RenderUnitBar(names []string, active string, width int) string {
	t := theme.Active

	label := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background).Render(" Units ")
	activeStyle := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Bold(true).
		Padding(0, 1)
	idleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Background).
		Padding(0, 1)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)

	if len(names) == 0 {
		return lipgloss.NewStyle().Background(t.Background).Width(width).
			Render(label + mutedStyle.Render("no units, press U to add one"))
	}

	parts := make([]string, len(names))
	activeIdx := 0
	for i, n := range names {
		if n == active {
			parts[i] = activeStyle.Render(n)
			activeIdx = i
		} else {
			parts[i] = idleStyle.Render(n)
		}
	}

	// Trim from the far side of the active unit until the row fits.
	lo, hi := 0, len(parts)
	fits := func() bool {
		return lipgloss.Width(label+strings.Join(parts[lo:hi], ""))+4 <= width
	}
	for !fits() && hi-lo > 1 {
		if activeIdx-lo > hi-1-activeIdx {
			lo++
		} else {
			hi--
		}
	}

	row := label
	if lo > 0 {
		row += mutedStyle.Render("‹ ")
	}
	row += strings.Join(parts[lo:hi], "")
	if hi < len(parts) {
		row += mutedStyle.Render(" ›")
	}
	return lipgloss.NewStyle().Background(t.Background).Width(width).Render(row)
}
