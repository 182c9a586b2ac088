package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loaishar/RealEstateManager/internal/model"
	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// separatorRow in Table.Rows draws a horizontal rule.
const separatorRow = "---"

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	t := theme.Active
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(fg(t.TextPrimary).Bold(true).Render(title))
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned and the rest right-aligned.
func RenderTable(tb Table) string {
	if len(tb.Rows) == 0 && len(tb.Headers) == 0 {
		return ""
	}

	t := theme.Active
	border := fg(t.TextDim)
	header := fg(t.Accent).Bold(true)
	value := fg(t.TextPrimary)

	numCols := len(tb.Headers)
	if numCols == 0 {
		numCols = len(tb.Rows[0])
	}
	widths := columnWidths(tb, numCols)

	var b strings.Builder
	rule := func(left, mid, right string) {
		segs := make([]string, len(widths))
		for i, w := range widths {
			segs[i] = strings.Repeat("─", w+2)
		}
		b.WriteString(border.Render(left + strings.Join(segs, mid) + right))
		b.WriteByte('\n')
	}
	line := func(cells []string, style lipgloss.Style, alignNumbers bool) {
		b.WriteString(border.Render("│"))
		for i := range numCols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style.Render(" " + Pad(cell, widths[i], alignNumbers && i > 0) + " "))
			b.WriteString(border.Render("│"))
		}
		b.WriteByte('\n')
	}

	if tb.Title != "" {
		b.WriteString("  " + header.Render(tb.Title) + "\n")
	}
	rule("╭", "┬", "╮")
	if len(tb.Headers) > 0 {
		line(tb.Headers, header, false)
		rule("├", "┼", "┤")
	}
	for _, row := range tb.Rows {
		if len(row) == 1 && row[0] == separatorRow {
			rule("├", "┼", "┤")
			continue
		}
		line(row, value, true)
	}
	rule("╰", "┴", "╯")

	return b.String()
}

func columnWidths(tb Table, numCols int) []int {
	widths := make([]int, numCols)
	if tb.Widths != nil {
		copy(widths, tb.Widths)
		return widths
	}
	grow := func(cells []string) {
		for i, c := range cells {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}
	grow(tb.Headers)
	for _, row := range tb.Rows {
		if len(row) == 1 && row[0] == separatorRow {
			continue
		}
		grow(row)
	}
	return widths
}

// Pad fills cell to width w, measuring styled text by its visible width.
func Pad(cell string, w int, right bool) string {
	gap := w - lipgloss.Width(cell)
	if gap <= 0 {
		return cell
	}
	if right {
		return strings.Repeat(" ", gap) + cell
	}
	return cell + strings.Repeat(" ", gap)
}

// RenderStatus colours a payment status for tables.
func RenderStatus(s model.Status) string {
	return fg(theme.Active.StatusColor(s)).Render(s.Title())
}

// RenderWarning renders a single warning line.
func RenderWarning(msg string) string {
	return fg(theme.Active.Orange).Render("  ! " + msg)
}

// RenderMuted renders secondary text.
func RenderMuted(msg string) string {
	return fg(theme.Active.TextMuted).Render(msg)
}

// RenderProgressBar renders a completion bar for a 0-100 percentage.
func RenderProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = min(max(pct, 0), 100)

	filled := int(pct / 100 * float64(width))
	bar := fg(theme.Active.Completed).Render(strings.Repeat("█", filled)) +
		fg(theme.Active.TextDim).Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %s", bar, FormatPercent(pct))
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline scales values onto block characters, the largest value
// drawing a full block.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	peak := max(values[0], 0)
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	top := len(sparkBlocks) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		out[i] = sparkBlocks[min(max(int(v/peak*float64(top)), 0), top)]
	}
	return string(out)
}

// RenderHorizontalBar renders a labelled horizontal bar chart entry.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return "  " + label
	}
	barLen := min(max(int(value/maxValue*float64(maxWidth)), 0), maxWidth)
	return "  " + label + " " + fg(theme.Active.Accent).Render(strings.Repeat("█", barLen))
}
