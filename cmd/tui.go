package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/loaishar/RealEstateManager/internal/config"
	"github.com/loaishar/RealEstateManager/internal/csvio"
	"github.com/loaishar/RealEstateManager/internal/ledger"
	"github.com/loaishar/RealEstateManager/internal/logging"
	"github.com/loaishar/RealEstateManager/internal/model"
	"github.com/loaishar/RealEstateManager/internal/session"
	"github.com/loaishar/RealEstateManager/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive dashboard (default command)",
	RunE:  runTUI,
}

var (
	flagDemo   bool
	flagImport string
)

func init() {
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().BoolVar(&flagDemo, "demo", false, "Start with two demo units")
		c.Flags().StringVar(&flagImport, "import", "", "Import a CSV or XLSX file on start")
	}
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	when, err := asOf()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to the configured
	// file instead of stderr.
	tuiLogger, closer, err := logging.ForTUI(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	l, err := initialLedger()
	if err != nil {
		return err
	}
	store := session.New(l, tuiLogger)
	if flagImport != "" {
		if err := importInto(store, flagImport); err != nil {
			return err
		}
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Options{
		Store:     store,
		Config:    cfg,
		AsOf:      when,
		Logger:    tuiLogger,
		NeedSetup: !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	start := time.Now()
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	tuiLogger.Debug("dashboard closed", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// initialLedger is the demo data with --demo, otherwise a single empty unit.
func initialLedger() (ledger.Ledger, error) {
	if flagDemo {
		return ledger.Demo(), nil
	}
	name := flagUnit
	if name == "" {
		name = cfg.General.DefaultUnit
	}
	if name == "" {
		name = "Unit A"
	}
	return ledger.New(model.Unit{Name: name})
}

// importInto loads path into the active unit using the suggested mapping
// plus --map overrides.
func importInto(store *session.Store, path string) error {
	t, err := csvio.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if _, err := store.BeginImport(path, t); err != nil {
		return err
	}
	m, err := importMapping(t.Headers)
	if err == nil {
		_, err = store.ConfirmImport(m)
	}
	if err != nil {
		_ = store.CancelImport()
		return err
	}
	return nil
}
