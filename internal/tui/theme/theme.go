// Package theme defines color themes for the remanager TUI dashboard.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/loaishar/RealEstateManager/internal/model"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name string

	// Surfaces, from the app background up to emphasized panels.
	Background    lipgloss.Color
	Surface       lipgloss.Color
	SurfaceHover  lipgloss.Color
	SurfaceBright lipgloss.Color

	Border       lipgloss.Color
	BorderAccent lipgloss.Color

	TextDim     lipgloss.Color // hints, disabled
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	Green       lipgloss.Color
	GreenBright lipgloss.Color
	Orange      lipgloss.Color
	Red         lipgloss.Color
	Blue        lipgloss.Color
	Yellow      lipgloss.Color
	Cyan        lipgloss.Color

	// Payment status colors, picked from the palette above.
	Completed lipgloss.Color
	Upcoming  lipgloss.Color
	Overdue   lipgloss.Color
	Scheduled lipgloss.Color
}

// palette lists a theme's colors as hex or ANSI codes, grouped by role.
type palette struct {
	bg, surface, hover, bright string
	border, borderAccent       string
	dim, muted, text           string
	accent, accentBright       string
	green, greenBright, orange string
	red, blue, yellow, cyan    string
}

func newTheme(name string, p palette) Theme {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Theme{
		Name:          name,
		Background:    c(p.bg),
		Surface:       c(p.surface),
		SurfaceHover:  c(p.hover),
		SurfaceBright: c(p.bright),
		Border:        c(p.border),
		BorderAccent:  c(p.borderAccent),
		TextDim:       c(p.dim),
		TextMuted:     c(p.muted),
		TextPrimary:   c(p.text),
		Accent:        c(p.accent),
		AccentBright:  c(p.accentBright),
		Green:         c(p.green),
		GreenBright:   c(p.greenBright),
		Orange:        c(p.orange),
		Red:           c(p.red),
		Blue:          c(p.blue),
		Yellow:        c(p.yellow),
		Cyan:          c(p.cyan),
		Completed:     c(p.green),
		Upcoming:      c(p.yellow),
		Overdue:       c(p.red),
		Scheduled:     c(p.blue),
	}
}

// FlexokiDark is the default theme, warm and paper-inspired.
var FlexokiDark = newTheme("flexoki-dark", palette{
	bg: "#100F0F", surface: "#1C1B1A", hover: "#282726", bright: "#343331",
	border: "#403E3C", borderAccent: "#3AA99F",
	dim: "#575653", muted: "#878580", text: "#FFFCF0",
	accent: "#3AA99F", accentBright: "#5BC8BE",
	green: "#879A39", greenBright: "#A3B859", orange: "#DA702C",
	red: "#D14D41", blue: "#4385BE", yellow: "#D0A215", cyan: "#24837B",
})

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = newTheme("catppuccin-mocha", palette{
	bg: "#1E1E2E", surface: "#313244", hover: "#45475A", bright: "#585B70",
	border: "#585B70", borderAccent: "#89B4FA",
	dim: "#6C7086", muted: "#A6ADC8", text: "#CDD6F4",
	accent: "#89B4FA", accentBright: "#B4D0FB",
	green: "#A6E3A1", greenBright: "#C6F6C1", orange: "#FAB387",
	red: "#F38BA8", blue: "#89B4FA", yellow: "#F9E2AF", cyan: "#94E2D5",
})

// TokyoNight is a cool blue and purple theme.
var TokyoNight = newTheme("tokyo-night", palette{
	bg: "#1A1B26", surface: "#24283B", hover: "#343A52", bright: "#414868",
	border: "#565F89", borderAccent: "#7AA2F7",
	dim: "#565F89", muted: "#A9B1D6", text: "#C0CAF5",
	accent: "#7AA2F7", accentBright: "#A9C1FF",
	green: "#9ECE6A", greenBright: "#B9E87A", orange: "#FF9E64",
	red: "#F7768E", blue: "#7AA2F7", yellow: "#E0AF68", cyan: "#7DCFFF",
})

// Terminal uses ANSI 16 colors only.
var Terminal = newTheme("terminal", palette{
	bg: "0", surface: "0", hover: "8", bright: "8",
	border: "8", borderAccent: "6",
	dim: "8", muted: "7", text: "15",
	accent: "6", accentBright: "14",
	green: "2", greenBright: "10", orange: "3",
	red: "1", blue: "4", yellow: "3", cyan: "6",
})

// All available themes in display order.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Active is the currently selected theme.
var Active = FlexokiDark

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names returns the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// StatusColor returns the color used for a payment status.
func (t Theme) StatusColor(s model.Status) lipgloss.Color {
	switch s {
	case model.StatusCompleted:
		return t.Completed
	case model.StatusOverdue:
		return t.Overdue
	case model.StatusUpcoming:
		return t.Upcoming
	default:
		return t.Scheduled
	}
}
