package csvio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/loaishar/RealEstateManager/internal/model"
)

const maxSheetName = 31

// ReadXLSX reads the first sheet of a workbook as a table. The first row is
// the header. Cells with a date number format read as ISO dates; all other
// cells read as Excel displays them.
func ReadXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, &MalformedCSVError{Reason: "reading workbook", Err: err}
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Table{}, &MalformedCSVError{Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, &MalformedCSVError{Reason: fmt.Sprintf("reading sheet %q", sheet), Err: err}
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, &MalformedCSVError{Reason: fmt.Sprintf("reading sheet %q", sheet), Err: err}
	}

	dates := dateCells{f: f, sheet: sheet, styles: map[int]bool{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		dates.date1904 = *props.Date1904
	}

	lines := make([]int, len(rows))
	for i, row := range rows {
		lines[i] = i + 1
		if i == 0 || i >= len(raw) {
			continue
		}
		for j := range row {
			if j < len(raw[i]) {
				if d, ok := dates.convert(j+1, i+1, raw[i][j]); ok {
					row[j] = d
				}
			}
		}
	}
	return tableFromRecords(rows, lines)
}

// dateCells turns date serials back into dates, looking at each cell's
// number format. Results per style are cached.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func (d dateCells) convert(col, row int, raw string) (string, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", false
	}
	id, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil {
		return "", false
	}
	isDate, seen := d.styles[id]
	if !seen {
		isDate = isDateStyle(d.f, id)
		d.styles[id] = isDate
	}
	if !isDate {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	return t.Format(model.DateLayout), true
}

// builtInDateFormats are the built-in number format IDs that show a date.
var builtInDateFormats = map[int]bool{14: true, 15: true, 16: true, 17: true, 22: true}

func isDateStyle(f *excelize.File, id int) bool {
	if id == 0 {
		return false
	}
	st, err := f.GetStyle(id)
	if err != nil || st == nil {
		return false
	}
	if st.CustomNumFmt != nil {
		return isDateFormat(*st.CustomNumFmt)
	}
	return builtInDateFormats[st.NumFmt]
}

// isDateFormat reports whether a custom format code shows a day or a year.
// Quoted literals and bracketed sections such as colors are ignored.
func isDateFormat(code string) bool {
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case r == 'd' || r == 'y':
			return true
		}
	}
	return false
}

// WriteXLSX writes payments to a single-sheet workbook named after the unit,
// using the same columns as WriteCSV.
func WriteXLSX(w io.Writer, unit string, payments []model.Payment) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetName(unit)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, 0, len(model.Fields))
	for _, h := range ExportHeaders() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return fmt.Errorf("creating date style: %w", err)
	}
	for i, p := range payments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			p.Milestone,
			p.DueDate,
			numberCell(p.Amount),
			numberCell(p.Cumulative),
			p.Covered,
			optionalCell(p.Transferred),
			optionalCell(p.TotalCovered),
			optionalCell(p.Remaining),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing payment %s: %w", p.ID, err)
		}
	}
	if len(payments) > 0 {
		last, err := excelize.CoordinatesToCellName(2, len(payments)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "B2", last, dateStyle); err != nil {
			return fmt.Errorf("styling due dates: %w", err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "H", 14); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// numberCell writes d as a number when it survives the trip through a
// float64, and as text otherwise so no digits are lost.
func numberCell(d decimal.Decimal) any {
	f := d.InexactFloat64()
	if decimal.NewFromFloat(f).Equal(d) {
		return f
	}
	return d.String()
}

func optionalCell(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return numberCell(*d)
}

// sheetName makes a unit name acceptable as an Excel sheet name.
func sheetName(unit string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.Trim(strings.TrimSpace(unit), "'"))
	if name == "" {
		return "Payments"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}
