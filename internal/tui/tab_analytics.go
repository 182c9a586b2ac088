package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loaishar/RealEstateManager/internal/analytics"
	"github.com/loaishar/RealEstateManager/internal/cli"
	"github.com/loaishar/RealEstateManager/internal/model"
	"github.com/loaishar/RealEstateManager/internal/tui/components"
	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

func (a App) renderAnalyticsTab(cw int) string {
	t := theme.Active
	l := a.store.Ledger()
	if l.Len() == 0 {
		return components.ContentCard("Analytics",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render("No units yet. Press U to add one."), cw)
	}

	summaries := analytics.SummarizeLedger(l)
	unit, _ := l.ActiveUnit()

	var b strings.Builder
	b.WriteString(a.renderUnitTotals(summaries, cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(a.renderCompletion(summaries, cw))
		b.WriteString("\n")
		b.WriteString(a.renderStatusBreakdown(unit, cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.renderCompletion(summaries, widths[0]),
			a.renderStatusBreakdown(unit, widths[1]),
		}))
	}
	b.WriteString("\n")
	b.WriteString(a.renderMonthlyChart(unit, cw))

	return b.String()
}

func (a App) renderUnitTotals(summaries []analytics.UnitSummary, cw int) string {
	t := theme.Active
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	activeStyle := rowStyle.Foreground(t.AccentBright).Bold(true)
	totalStyle := rowStyle.Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	nameW := max(innerW-3*17-10-4, 10)

	row := func(name, total, covered, remaining, pct string) string {
		return cli.Pad(truncStr(name, nameW), nameW, false) + " " +
			cli.Pad(total, 16, true) + " " +
			cli.Pad(covered, 16, true) + " " +
			cli.Pad(remaining, 16, true) + " " +
			cli.Pad(pct, 9, true)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(row("Unit", "Total", "Covered", "Remaining", "Complete")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")

	active := a.store.Ledger().Active()
	for _, s := range summaries {
		style := rowStyle
		if s.Unit == active {
			style = activeStyle
		}
		b.WriteString(style.Render(row(s.Unit,
			a.currency.Format(s.TotalAmount),
			a.currency.Format(s.CoveredAmount),
			a.currency.Format(s.RemainingAmount),
			cli.FormatPercent(s.CompletionPercentage))))
		b.WriteString("\n")
	}

	if len(summaries) > 1 {
		total := analytics.Total("All units", summaries)
		b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
		b.WriteString("\n")
		b.WriteString(totalStyle.Render(row(total.Unit,
			a.currency.Format(total.TotalAmount),
			a.currency.Format(total.CoveredAmount),
			a.currency.Format(total.RemainingAmount),
			cli.FormatPercent(total.CompletionPercentage))))
	}

	return components.ContentCard(fmt.Sprintf("Units (%d)", len(summaries)), strings.TrimRight(b.String(), "\n"), cw)
}

func (a App) renderCompletion(summaries []analytics.UnitSummary, cw int) string {
	innerW := components.CardInnerWidth(cw)
	labelW := min(max(innerW/3, 8), 24)
	barW := max(innerW-labelW-1-8, 10) // room for " 100.0%"

	lines := make([]string, len(summaries))
	for i, s := range summaries {
		lines[i] = components.LabeledBar(s.Unit, s.CompletionPercentage/100, labelW, barW)
	}
	return components.ContentCard("Completion", strings.Join(lines, "\n"), cw)
}

func (a App) renderStatusBreakdown(unit model.Unit, cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	for _, c := range analytics.StatusBreakdown(unit.Payments, a.asOf, a.window()) {
		dot := lipgloss.NewStyle().Foreground(t.StatusColor(c.Status)).Background(t.Surface).Render("●")
		b.WriteString(dot)
		b.WriteString(labelStyle.Render(fmt.Sprintf(" %-10s", c.Status.Title())))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%3d  %s", c.Count, a.currency.Format(c.Amount))))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render(a.nextDueLine(unit.Payments)))

	return components.ContentCard("Status · "+unit.Name, b.String(), cw)
}

func (a App) renderMonthlyChart(unit model.Unit, cw int) string {
	t := theme.Active
	months := analytics.Monthly(unit.Payments)
	if len(months) == 0 {
		return components.ContentCard("Due by month · "+unit.Name,
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No payments scheduled"), cw)
	}

	values := make([]float64, len(months))
	labels := make([]string, len(months))
	for i, m := range months {
		values[i] = m.Amount.InexactFloat64()
		labels[i] = chartMonthLabel(months, i)
	}

	chart := components.BarChart(values, labels, t.Blue, components.CardInnerWidth(cw), 8)
	return components.ContentCard("Due by month · "+unit.Name, chart, cw)
}

// chartMonthLabel labels the first month and each January with the year.
func chartMonthLabel(months []analytics.MonthStats, i int) string {
	m := months[i].Month
	if i == 0 || m.Month() == 1 {
		return m.Format("Jan 06")
	}
	return m.Format("Jan")
}
