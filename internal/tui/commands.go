package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/loaishar/RealEstateManager/internal/csvio"
	"github.com/loaishar/RealEstateManager/internal/model"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

// importLoadedMsg is sent when an import file has been read and parsed.
type importLoadedMsg struct {
	path  string
	table csvio.Table
	err   error
}

// fileWrittenMsg is sent when an export or the sample file is on disk.
type fileWrittenMsg struct {
	what string
	path string
	err  error
}

// importFileCmd reads and parses path off the update loop.
func importFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		t, err := csvio.ReadFile(path)
		return importLoadedMsg{path: path, table: t, err: err}
	}
}

// exportCmd writes the unit's schedule to dir in the given format.
func exportCmd(dir string, unit model.Unit, format string, at time.Time) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, csvio.ExportFilename(unit.Name, at, format))
		err := writeFile(path, func(w io.Writer) error {
			if format == formatXLSX {
				return csvio.WriteXLSX(w, unit.Name, unit.Payments)
			}
			return csvio.WriteCSV(w, unit.Payments)
		})
		return fileWrittenMsg{what: unit.Name + " " + format, path: path, err: err}
	}
}

// sampleCmd writes the sample import file to dir.
func sampleCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, csvio.SampleFilename)
		return fileWrittenMsg{what: "sample", path: path, err: writeFile(path, csvio.WriteSample)}
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
