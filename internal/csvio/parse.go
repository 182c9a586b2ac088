// Package csvio reads payment schedules from CSV and XLSX files, maps
// arbitrary columns onto payment fields, and writes exports.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is a parsed spreadsheet: the header row and each data row keyed by
// header. Cell values are raw strings; nothing is validated here.
type Table struct {
	Headers []string
	Rows    []map[string]string
	Lines   []int // 1-based source line of each row; may be nil
}

// line returns the source line of row i, or 0 when unknown.
func (t Table) line(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	return 0
}

// ParseCSV reads a CSV file with a header row. A leading byte order mark is
// dropped and UTF-16 input with a BOM is decoded. Empty lines and rows whose
// cells are all blank are skipped. Rows may be shorter or longer than the
// header; missing cells read as "" and extra cells are dropped.
func ParseCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records [][]string
	var lines []int
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return Table{}, &MalformedCSVError{Line: pe.Line, Err: pe.Err}
			}
			return Table{}, &MalformedCSVError{Err: err}
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return tableFromRecords(records, lines)
}

// ReadFile reads a .csv or .xlsx file by extension.
func ReadFile(path string) (Table, error) {
	var read func(io.Reader) (Table, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		read = ParseCSV
	case ".xlsx":
		read = ReadXLSX
	default:
		return Table{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the user
	if err != nil {
		return Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return read(f)
}

// tableFromRecords builds a table from the header record and data records.
// lines holds the source line of each record.
func tableFromRecords(records [][]string, lines []int) (Table, error) {
	if len(records) == 0 {
		return Table{}, &MalformedCSVError{Reason: "missing header row"}
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	if isBlank(header) {
		return Table{}, &MalformedCSVError{Line: lines[0], Reason: "empty header row"}
	}

	t := Table{Headers: make([]string, len(header))}
	seen := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		if prev, dup := seen[h]; dup {
			return Table{}, &MalformedCSVError{
				Line:   lines[0],
				Reason: fmt.Sprintf("duplicate header %q in columns %d and %d", h, prev+1, i+1),
			}
		}
		seen[h] = i
		t.Headers[i] = h
	}
	for n, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
		t.Lines = append(t.Lines, lines[n+1])
	}
	return t, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
