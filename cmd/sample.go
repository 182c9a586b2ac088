package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loaishar/RealEstateManager/internal/csvio"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [PATH]",
	Short: "Write a sample CSV showing the import format (\"-\" for stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}

func runSample(_ *cobra.Command, args []string) error {
	if len(args) == 1 && args[0] == "-" {
		return csvio.WriteSample(os.Stdout)
	}

	path := filepath.Join(cfg.General.ExportPath(), csvio.SampleFilename)
	if len(args) == 1 {
		path = args[0]
	}

	var buf bytes.Buffer
	if err := csvio.WriteSample(&buf); err != nil {
		return err
	}
	if err := writeOutput(path, buf.Bytes()); err != nil {
		return err
	}
	logger.Info("sample written", "path", path)
	fmt.Println(path)
	return nil
}
