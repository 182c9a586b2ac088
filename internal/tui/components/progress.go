package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

// ColorForPct returns red/orange/yellow/green as a 0-1 completion ratio
// rises.
func ColorForPct(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 0.9:
		return t.Green
	case pct >= 0.6:
		return t.Yellow
	case pct >= 0.3:
		return t.Orange
	default:
		return t.Red
	}
}

// ProgressBar renders a completion bar for a 0-1 ratio followed by the
// percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = min(max(pct, 0), 1)
	if width < 4 {
		width = 4
	}

	color := ColorForPct(pct)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(pct) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.1f%%", pct*100))
}

// LabeledBar renders "label  [bar] pct" with a fixed label column, used for
// per-unit completion lists.
func LabeledBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	runes := []rune(label)
	if len(runes) > labelW {
		label = string(runes[:labelW-1]) + "…"
	}
	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		ProgressBar(pct, barWidth)
}
