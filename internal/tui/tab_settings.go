package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/loaishar/RealEstateManager/internal/cli"
	"github.com/loaishar/RealEstateManager/internal/config"
	"github.com/loaishar/RealEstateManager/internal/tui/components"
	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldWindow
	settingsFieldExportDir
	settingsFieldDefaultUnit
	settingsFieldLogLevel
	settingsFieldCount // sentinel
)

// sampleAmount previews the currency format.
var sampleAmount = decimal.RequireFromString("1234.5")

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

// applyConfig makes cfg the live configuration.
func (a *App) applyConfig(cfg config.Config) {
	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	a.currency = cli.NewCurrency(cfg.Currency)
}

func (a App) handleSettingsKey(key string) (next App, cmd tea.Cmd, ok bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter":
		return a.settingsStartEdit()
	case "w":
		return a, a.openSetupForm(), true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) settingsStartEdit() (App, tea.Cmd, bool) {
	cfg := a.cfg
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldCurrency:
		ti.Placeholder = strings.Join(config.CurrencyCodes(), ", ")
		ti.SetValue(cfg.Currency.Code)
	case settingsFieldWindow:
		ti.Placeholder = "30 (days, 1-365)"
		ti.SetValue(strconv.Itoa(cfg.General.UpcomingWindowDays))
	case settingsFieldExportDir:
		ti.Placeholder = ". (current directory)"
		ti.SetValue(cfg.General.ExportDir)
	case settingsFieldDefaultUnit:
		ti.Placeholder = "Unit A"
		ti.SetValue(cfg.General.DefaultUnit)
	case settingsFieldLogLevel:
		ti.Placeholder = "debug, info, warn or error"
		ti.SetValue(cfg.Log.Level)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd(), true
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates the edited value, saves the config file and
// applies it to the running dashboard.
func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !slices.Contains(theme.Names(), val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
	case settingsFieldCurrency:
		c, ok := config.LookupCurrency(strings.ToUpper(val))
		if !ok {
			a.settings.saveErr = fmt.Errorf("unknown currency %q; edit the config file for custom currencies", val)
			return
		}
		cfg.Currency = c
	case settingsFieldWindow:
		d, err := strconv.Atoi(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("upcoming window: %q is not a number", val)
			return
		}
		cfg.General.UpcomingWindowDays = d
	case settingsFieldExportDir:
		cfg.General.ExportDir = val
	case settingsFieldDefaultUnit:
		cfg.General.DefaultUnit = val
	case settingsFieldLogLevel:
		cfg.Log.Level = strings.ToLower(val)
	}

	if err := cfg.Validate(); err != nil {
		a.settings.saveErr = err
		return
	}
	a.applyConfig(cfg)
	a.settings.saveErr = config.SaveTo(a.cfgPath, cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	orNotSet := func(s string) string {
		if s == "" {
			return "(not set)"
		}
		return s
	}

	fields := []struct {
		label string
		value string
	}{
		{"Theme", cfg.Appearance.Theme},
		{"Currency", fmt.Sprintf("%s (%s, %s)", cfg.Currency.Code, cfg.Currency.Locale,
			a.currency.Format(sampleAmount))},
		{"Upcoming Window", fmt.Sprintf("%d days", cfg.General.UpcomingWindowDays)},
		{"Export Directory", cfg.General.ExportPath()},
		{"Default Unit", orNotSet(cfg.General.DefaultUnit)},
		{"Log Level", cfg.Log.Level},
	}

	innerW := components.CardInnerWidth(cw)

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if padLen := innerW - lipgloss.Width(marker+label+value); padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Not saved: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel  [w] setup wizard"))

	l := a.store.Ledger()
	payments := 0
	for _, u := range l.Units() {
		payments += len(u.Payments)
	}

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(a.cfgPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Log file:     ") + valueStyle.Render(orNotSet(cfg.Log.File)) + "\n")
	infoBody.WriteString(labelStyle.Render("Units:        ") + valueStyle.Render(cli.FormatNumber(int64(l.Len()))) + "\n")
	infoBody.WriteString(labelStyle.Render("Payments:     ") + valueStyle.Render(cli.FormatNumber(int64(payments))) + "\n")
	infoBody.WriteString(labelStyle.Render("Statuses as of ") + valueStyle.Render(cli.FormatDate(a.asOf)))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Session", infoBody.String(), cw))

	return b.String()
}
