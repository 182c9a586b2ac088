package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/loaishar/RealEstateManager/internal/csvio"
)

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export a schedule with recomputed cumulative amounts",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory (default: general.export_dir)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "xlsx" {
		return fmt.Errorf("unknown format %q (want csv or xlsx)", exportFormat)
	}

	u, err := readUnit(args[0], unitName(args[0]))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if exportFormat == "xlsx" {
		err = csvio.WriteXLSX(&buf, u.Name, u.Payments)
	} else {
		err = csvio.WriteCSV(&buf, u.Payments)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", exportFormat, err)
	}

	dir := exportOut
	if dir == "" {
		dir = cfg.General.ExportPath()
	}
	path := filepath.Join(dir, csvio.ExportFilename(u.Name, time.Now(), exportFormat))
	if err := writeOutput(path, buf.Bytes()); err != nil {
		return err
	}

	logger.Info("schedule exported", "unit", u.Name, "payments", len(u.Payments), "path", path)
	fmt.Println(path)
	return nil
}

func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // user-facing export
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
