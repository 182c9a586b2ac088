package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/loaishar/RealEstateManager/internal/config"
	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

// SetupValues holds the answers of the setup wizard.
type SetupValues struct {
	Currency    string
	Theme       string
	WindowDays  string
	ExportDir   string
	DefaultUnit string
}

// NewSetupValues pre-fills the wizard from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Currency:    cfg.Currency.Code,
		Theme:       cfg.Appearance.Theme,
		WindowDays:  strconv.Itoa(cfg.General.UpcomingWindowDays),
		ExportDir:   cfg.General.ExportDir,
		DefaultUnit: cfg.General.DefaultUnit,
	}
}

// NewSetupForm builds the setup wizard shown on first run and by
// `remanager setup`.
func NewSetupForm(v *SetupValues) *huh.Form {
	var currencyOpts []huh.Option[string]
	for _, code := range config.CurrencyCodes() {
		c, _ := config.LookupCurrency(code)
		currencyOpts = append(currencyOpts, huh.NewOption(fmt.Sprintf("%s (%s)", code, c.Locale), code))
	}
	if _, ok := config.LookupCurrency(v.Currency); !ok && v.Currency != "" {
		currencyOpts = append([]huh.Option[string]{huh.NewOption(v.Currency+" (current)", v.Currency)}, currencyOpts...)
	}

	var themeOpts []huh.Option[string]
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to remanager").
				Description("Track unit payment schedules, import CSV files\nand see what is due next.\n\nA few settings first."),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Currency").
				Description("Amounts are shown as CODE and a localized number.").
				Options(currencyOpts...).
				Value(&v.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Upcoming window (days)").
				Description("Unpaid payments due within this many days are upcoming.").
				Value(&v.WindowDays).
				Validate(validateWindowDays),
			huh.NewInput().
				Title("Export directory").
				Description("Exports and the sample file are written here.").
				Placeholder(".").
				Value(&v.ExportDir),
			huh.NewInput().
				Title("Default unit name").
				Placeholder("Unit A").
				Value(&v.DefaultUnit),
		),
	).WithShowHelp(true)
}

func validateWindowDays(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 365 {
		return errors.New("enter a number of days from 1 to 365")
	}
	return nil
}

// Apply writes the answers into cfg and validates the result. cfg is left
// unchanged on error.
func (v SetupValues) Apply(cfg *config.Config) error {
	next := *cfg

	if c, ok := config.LookupCurrency(v.Currency); ok {
		next.Currency = c
	} else if v.Currency != cfg.Currency.Code {
		return fmt.Errorf("unknown currency %q", v.Currency)
	}
	if v.Theme != "" {
		next.Appearance.Theme = v.Theme
	}
	days, err := strconv.Atoi(strings.TrimSpace(v.WindowDays))
	if err != nil {
		return fmt.Errorf("upcoming window: %w", err)
	}
	next.General.UpcomingWindowDays = days
	next.General.ExportDir = strings.TrimSpace(v.ExportDir)
	next.General.DefaultUnit = strings.TrimSpace(v.DefaultUnit)

	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = next
	return nil
}

func (a *App) openSetupForm() tea.Cmd {
	v := &formValues{setup: NewSetupValues(a.cfg)}
	return a.openForm(formSetup, v, NewSetupForm(v.setup))
}

func (a App) completeSetup(v *SetupValues) (App, tea.Cmd) {
	cfg := a.cfg
	if err := v.Apply(&cfg); err != nil {
		a.setError(err)
		return a, nil
	}
	a.applyConfig(cfg)
	if err := config.SaveTo(a.cfgPath, cfg); err != nil {
		a.setError(fmt.Errorf("settings apply to this session only: %w", err))
		return a, nil
	}
	a.setFlash("Saved " + a.cfgPath)
	return a, nil
}
