package csvio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/loaishar/RealEstateManager/internal/ledger"
	"github.com/loaishar/RealEstateManager/internal/model"
)

func demoUnit(t *testing.T) model.Unit {
	t.Helper()
	u, ok := ledger.Demo().Unit("Unit A")
	require.True(t, ok)
	return u
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, demoUnit(t).Payments))

	want := "Milestone,Due Date,Amount,Cumulative,Covered,Transferred,Total Covered,Remaining\n" +
		"Immediate,2024-06-10,333880,333880,true,417160,403430,13730\n" +
		"Within 3 month(s),2024-09-10,13910,347790,true,,,\n" +
		"Within 4 month(s),2024-10-10,13910,361700,false,,,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(ExportHeaders(), ",")+"\n", buf.String())
}

func TestWriteCSVQuotesCommas(t *testing.T) {
	p := model.Payment{Milestone: "Handover, keys", DueDate: model.Date(2025, 1, 1)}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []model.Payment{p}))
	assert.Contains(t, buf.String(), `"Handover, keys",2025-01-01,0,0,false`)
}

// assertRoundTrip imports tbl into an empty unit and compares the result
// with the exported payments, ignoring IDs.
func assertRoundTrip(t *testing.T, tbl Table, want []model.Payment) {
	t.Helper()

	res, err := ApplyMapping(tbl, AutoMapping(tbl.Headers))
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	l, err := ledger.New(model.Unit{Name: "Copy"})
	require.NoError(t, err)
	l, err = l.AppendPayments("Copy", res.Drafts)
	require.NoError(t, err)

	got, _ := l.Unit("Copy")
	require.Len(t, got.Payments, len(want))
	for i := range want {
		g, w := got.Payments[i], want[i]
		assert.Equal(t, w.Milestone, g.Milestone)
		assert.True(t, w.DueDate.Equal(g.DueDate))
		assert.True(t, w.Amount.Equal(g.Amount))
		assert.True(t, w.Cumulative.Equal(g.Cumulative))
		assert.Equal(t, w.Covered, g.Covered)
		assert.Equal(t, optional(w.Transferred), optional(g.Transferred))
		assert.Equal(t, optional(w.TotalCovered), optional(g.TotalCovered))
		assert.Equal(t, optional(w.Remaining), optional(g.Remaining))
	}
}

func TestCSVRoundTrip(t *testing.T) {
	want := demoUnit(t).Payments

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, want))
	tbl, err := ParseCSV(&buf)
	require.NoError(t, err)

	assertRoundTrip(t, tbl, want)
}

func TestXLSXRoundTrip(t *testing.T) {
	want := demoUnit(t).Payments

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "Unit A", want))
	tbl, err := ReadXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, ExportHeaders(), tbl.Headers)

	assertRoundTrip(t, tbl, want)
}

// workbook builds an in-memory workbook with a Milestone/Due Date/Amount
// header and one data row, letting style set a number format on B2.
func workbook(t *testing.T, row []any, style *excelize.Style) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Milestone", "Due Date", "Amount"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	if style != nil {
		id, err := f.NewStyle(style)
		require.NoError(t, err)
		require.NoError(t, f.SetCellStyle(sheet, "B2", "B2", id))
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestReadXLSXDateCells(t *testing.T) {
	due := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	custom := "dd/mm/yyyy"
	tests := []struct {
		name  string
		row   []any
		style *excelize.Style
	}{
		{"time value", []any{"Immediate", due, 333880}, nil},
		{"serial with built-in format", []any{"Immediate", 45453, 333880}, &excelize.Style{NumFmt: 14}},
		{"serial with custom format", []any{"Immediate", 45453, 333880}, &excelize.Style{CustomNumFmt: &custom}},
		{"text date", []any{"Immediate", "2024-06-10", 333880}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := ReadXLSX(workbook(t, tt.row, tt.style))
			require.NoError(t, err)
			require.Len(t, tbl.Rows, 1)
			assert.Equal(t, "2024-06-10", tbl.Rows[0]["Due Date"])
			assert.Equal(t, "333880", tbl.Rows[0]["Amount"])
			assert.Equal(t, []int{2}, tbl.Lines)

			res, err := ApplyMapping(tbl, AutoMapping(tbl.Headers))
			require.NoError(t, err)
			require.Len(t, res.Drafts, 1)
			assert.True(t, due.Equal(res.Drafts[0].DueDate))
		})
	}
}

func TestReadXLSXPlainNumberNotDate(t *testing.T) {
	tbl, err := ReadXLSX(workbook(t, []any{"Immediate", 45453, 333880}, nil))
	require.NoError(t, err)
	assert.Equal(t, "45453", tbl.Rows[0]["Due Date"])
}

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"yyyy-mm-dd", true},
		{"d mmm yy", true},
		{"[$-409]mmmm d, yyyy", true},
		{"#,##0.00", false},
		{"0.00\"d\"", false},
		{"[Red]0", false},
		{"hh:mm", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isDateFormat(tt.code), tt.code)
	}
}

func TestXLSXKeepsLargeAmounts(t *testing.T) {
	big := decimal.RequireFromString("12345678901234567")
	p := model.Payment{Milestone: "Handover", DueDate: model.Date(2025, 1, 1), Amount: big, Cumulative: big}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "Unit A", []model.Payment{p}))
	tbl, err := ReadXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "12345678901234567", tbl.Rows[0]["Amount"])
	assert.Equal(t, "2025-01-01", tbl.Rows[0]["Due Date"])
}

func TestNumberCell(t *testing.T) {
	assert.Equal(t, 0.1, numberCell(decimal.RequireFromString("0.1")))
	assert.Equal(t, float64(333880), numberCell(decimal.NewFromInt(333880)))
	assert.Equal(t, "12345678901234567", numberCell(decimal.RequireFromString("12345678901234567")))
}

func TestReadXLSXMalformed(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("not a workbook"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSampleImports(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader(SampleCSV))
	require.NoError(t, err)
	res, err := ApplyMapping(tbl, AutoMapping(tbl.Headers))
	require.NoError(t, err)
	require.Len(t, res.Drafts, 4)
	assert.True(t, res.Drafts[1].Covered)
	assert.False(t, res.Drafts[3].Covered)
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, 6, 10, 14, 3, 7, 123456789, time.FixedZone("GST", 4*3600))
	assert.Equal(t, "payments_Unit A_2024-06-10T10:03:07.123Z.csv", ExportFilename("Unit A", at, ".csv"))
	assert.Equal(t, "payments_Tower_B_12_2024-06-10T10:03:07.123Z.xlsx", ExportFilename(`Tower/B\12`, at, "xlsx"))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Unit A", sheetName("Unit A"))
	assert.Equal(t, "Payments", sheetName("  "))
	assert.Equal(t, "Tower_B_ 1_", sheetName("Tower/B: 1?"))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40))), maxSheetName)
}
