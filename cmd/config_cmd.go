// Package cmd implements the remanager CLI commands.
package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/loaishar/RealEstateManager/internal/cli"
	"github.com/loaishar/RealEstateManager/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Upcoming window: %d days\n", cfg.General.UpcomingWindowDays)
	fmt.Printf("    Export dir:      %s\n", cfg.General.ExportPath())
	if cfg.General.DefaultUnit != "" {
		fmt.Printf("    Default unit:    %s\n", cfg.General.DefaultUnit)
	}
	fmt.Println()

	fmt.Println("  [Currency]")
	fmt.Printf("    Code:     %s\n", cfg.Currency.Code)
	fmt.Printf("    Locale:   %s\n", cfg.Currency.Locale)
	fmt.Printf("    Digits:   %d-%d\n", cfg.Currency.MinFractionDigits, cfg.Currency.MaxFractionDigits)
	fmt.Printf("    Example:  %s\n", cli.NewCurrency(cfg.Currency).Format(decimal.RequireFromString("1234567.5")))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Printf("    File:  %s\n", cfg.Log.File)
	} else {
		fmt.Println("    File:  none (dashboard logging off)")
	}
	fmt.Println()

	fmt.Println("  Run `remanager setup` to reconfigure.")
	return nil
}
