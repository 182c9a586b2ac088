package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/loaishar/RealEstateManager/internal/config"
	"github.com/loaishar/RealEstateManager/internal/csvio"
	"github.com/loaishar/RealEstateManager/internal/ledger"
	"github.com/loaishar/RealEstateManager/internal/logging"
	"github.com/loaishar/RealEstateManager/internal/model"
	"github.com/loaishar/RealEstateManager/internal/tui/theme"
)

var (
	flagAsOf     string
	flagMap      []string
	flagUnit     string
	flagQuiet    bool
	flagLogLevel string
)

// Loaded by the root PersistentPreRunE for every command.
var (
	cfg    config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "remanager",
	Short: "Real-estate unit payment schedule tracker",
	Long: "Track milestone payments per unit: import schedules from CSV or XLSX,\n" +
		"see what is covered, upcoming or overdue, and export the result.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Reference date for statuses (default today)")
	rootCmd.PersistentFlags().StringArrayVar(&flagMap, "map", nil, "Column mapping override HEADER=field (repeatable; field may be \"skip\")")
	rootCmd.PersistentFlags().StringVarP(&flagUnit, "unit", "u", "", "Unit name (default: file name)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	theme.SetActive(cfg.Appearance.Theme)
	logger, err = logging.ForCLI(cfg.Log, flagQuiet)
	return err
}

// asOf returns the --as-of date, or today.
func asOf() (time.Time, error) {
	if flagAsOf == "" {
		return model.DateOf(time.Now()), nil
	}
	t, ok := csvio.ParseDate(flagAsOf)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q", flagAsOf)
	}
	return t, nil
}

// importMapping suggests a mapping from the headers and applies --map
// overrides on top.
func importMapping(headers []string) (csvio.Mapping, error) {
	overrides, err := csvio.ParseMappingSpecs(flagMap)
	if err != nil {
		return nil, err
	}
	return csvio.AutoMapping(headers).Merge(overrides), nil
}

// unitName names the unit loaded from path: --unit when given, otherwise
// the file name without extension.
func unitName(path string) string {
	if flagUnit != "" {
		return flagUnit
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// readUnit imports a CSV or XLSX file into a unit with recomputed
// cumulative amounts. Mapping warnings are logged.
func readUnit(path, name string) (model.Unit, error) {
	t, err := csvio.ReadFile(path)
	if err != nil {
		return model.Unit{}, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := importMapping(t.Headers)
	if err != nil {
		return model.Unit{}, err
	}
	res, err := csvio.ApplyMapping(t, m)
	if err != nil {
		return model.Unit{}, fmt.Errorf("importing %s: %w", path, err)
	}
	for _, w := range res.Warnings {
		logger.Warn("column mapping", "file", path, "warning", w.Message)
	}

	l, err := ledger.New(model.Unit{Name: name})
	if err == nil {
		l, err = l.AppendPayments(name, res.Drafts)
	}
	if err != nil {
		return model.Unit{}, fmt.Errorf("importing %s: %w", path, err)
	}
	u, _ := l.Unit(name)
	logger.Debug("file loaded", "file", path, "unit", name, "payments", len(u.Payments))
	return u, nil
}
