package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	got := LayoutRow(10, 3)
	want := []int{4, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LayoutRow(10, 3) = %v, want %v", got, want)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Errorf("line %d width = %d, want %d", i, w, width)
		}
		if i >= shortLines && !strings.Contains(line, "\x1b[") {
			t.Errorf("padding line %d has no background styling: %q", i, line)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Total Value", Value: "AED 361,700"},
		{Label: "Covered Amount", Value: "AED 347,790", Delta: "2 of 3 payments"},
		{Label: "Remaining Balance", Value: "AED 13,910"},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if TabIdxByKey('z') != -1 {
		t.Error("unknown key should map to -1")
	}
}

func TestTabVisualWidth(t *testing.T) {
	for _, tab := range Tabs {
		active := TabVisualWidth(tab, true)
		if active != len(tab.Name)+2 {
			t.Errorf("%s active width = %d", tab.Name, active)
		}
		if idle := TabVisualWidth(tab, false); idle != len(tab.Name)+5 {
			t.Errorf("%s idle width = %d", tab.Name, idle)
		}
	}
}

func TestRenderUnitBar(t *testing.T) {
	names := []string{"Unit A", "Unit B", "Tower 3 / 1204"}
	bar := RenderUnitBar(names, "Unit B", 80)
	for _, n := range names {
		if !strings.Contains(bar, n) {
			t.Errorf("unit bar missing %q", n)
		}
	}

	narrow := RenderUnitBar(names, "Tower 3 / 1204", 30)
	if !strings.Contains(narrow, "Tower 3 / 1204") {
		t.Errorf("narrow bar dropped the active unit: %q", narrow)
	}
	if strings.Contains(narrow, "Unit A") {
		t.Errorf("narrow bar should elide the far unit: %q", narrow)
	}

	if empty := RenderUnitBar(nil, "", 80); !strings.Contains(empty, "no units") {
		t.Errorf("empty bar = %q", empty)
	}
}

func TestBarChart(t *testing.T) {
	out := BarChart([]float64{100, 50, 0}, []string{"Jun", "Jul", "Aug"}, theme.Active.Blue, 40, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 { // 4 rows + axis + labels
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[5], "Jun") {
		t.Errorf("label row = %q", lines[5])
	}

	if got := BarChart(nil, nil, theme.Active.Blue, 40, 4); got != "" {
		t.Errorf("empty chart = %q", got)
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{10, 2},
		{100, 20},
		{350000, 50000},
		{1000, 200},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{
		400000:  "400k",
		1500000: "1.5M",
		2e9:     "2B",
		12:      "12",
		0.5:     "0.50",
	}
	for in, want := range tests {
		if got := formatChartLabel(in); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestProgressBarClamps(t *testing.T) {
	if got := ProgressBar(1.5, 10); !strings.Contains(got, "100.0%") {
		t.Errorf("ProgressBar(1.5) = %q", got)
	}
	if got := ProgressBar(-1, 10); !strings.Contains(got, "0.0%") {
		t.Errorf("ProgressBar(-1) = %q", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	bar := RenderStatusBar(60, "[?]help [q]uit", Flash{Text: "Exported"}, "Unit A")
	if w := lipgloss.Width(bar); w != 60 {
		t.Errorf("width = %d, want 60", w)
	}
	if !strings.Contains(bar, "Exported") || !strings.Contains(bar, "Unit A") {
		t.Errorf("status bar = %q", bar)
	}
}
