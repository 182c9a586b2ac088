package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/loaishar/RealEstateManager/internal/model"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Unit A",
		Headers: []string{"Milestone", "Amount"},
		Rows: [][]string{
			{"Immediate", "AED 333,880"},
			{"---"},
			{"Total", "AED 1"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Unit A") {
		t.Errorf("title line = %q", lines[0])
	}
	width := lipgloss.Width(lines[1])
	for i, l := range lines[1:] {
		if w := lipgloss.Width(l); w != width {
			t.Errorf("line %d width %d, want %d: %q", i+1, w, width, l)
		}
	}
	if !strings.Contains(out, "       AED 1 ") {
		t.Errorf("amount column not right-aligned:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("RenderTable(empty) = %q", got)
	}
}

func TestPad(t *testing.T) {
	if got := Pad("ab", 4, false); got != "ab  " {
		t.Errorf("pad left = %q", got)
	}
	if got := Pad("ab", 4, true); got != "  ab" {
		t.Errorf("pad right = %q", got)
	}
	if got := Pad("abcdef", 4, true); got != "abcdef" {
		t.Errorf("pad overflow = %q", got)
	}
}

func TestRenderStatus(t *testing.T) {
	for _, s := range model.Statuses {
		if got := RenderStatus(s); !strings.Contains(got, s.Title()) {
			t.Errorf("RenderStatus(%s) = %q", s, got)
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	got := RenderProgressBar(50, 10)
	if !strings.Contains(got, "█████░░░░░") || !strings.Contains(got, "50.0%") {
		t.Errorf("RenderProgressBar(50) = %q", got)
	}
	if got := RenderProgressBar(150, 4); !strings.Contains(got, "████]") {
		t.Errorf("RenderProgressBar clamps: %q", got)
	}
	if got := RenderProgressBar(10, 0); got != "" {
		t.Errorf("zero width = %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 1}); got != "▁█" {
		t.Errorf("RenderSparkline = %q", got)
	}
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("RenderSparkline(nil) = %q", got)
	}
}
