package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Schedule", Key: '1'},
	{Name: "Analytics", Key: '2'},
	{Name: "Settings", Key: '3'},
}

func tabStyles(active bool) (name, key lipgloss.Style) {
	t := theme.Active
	if active {
		name = lipgloss.NewStyle().
			Foreground(t.AccentBright).
			Background(t.SurfaceHover).
			Bold(true).
			Padding(0, 1)
		return name, name
	}
	name = lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		PaddingLeft(1)
	key = lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		PaddingRight(1)
	return name, key
}

func renderTab(tab Tab, active bool) string {
	nameStyle, keyStyle := tabStyles(active)
	if active {
		return nameStyle.Render(tab.Name)
	}
	return nameStyle.Render(tab.Name) + keyStyle.Render("["+string(tab.Key)+"]")
}

// TabVisualWidth returns the rendered width of a tab, used for mouse hit
// testing.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}

	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(strings.Join(parts, sep))
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
