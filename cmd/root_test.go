package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loaishar/RealEstateManager/internal/config"
	"github.com/loaishar/RealEstateManager/internal/csvio"
	"github.com/loaishar/RealEstateManager/internal/logging"
	"github.com/loaishar/RealEstateManager/internal/model"
	"github.com/loaishar/RealEstateManager/internal/session"
)

// setup resets package state shared by the commands.
func setup(t *testing.T) {
	t.Helper()
	var err error
	logger, err = logging.New(io.Discard, "error")
	require.NoError(t, err)
	cfg = config.DefaultConfig()
	flagAsOf, flagUnit, flagMap, flagDemo = "", "", nil, false
	exportFormat, exportOut = "csv", ""
	t.Cleanup(func() {
		flagAsOf, flagUnit, flagMap, flagDemo = "", "", nil, false
		exportFormat, exportOut = "csv", ""
	})
}

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestAsOf(t *testing.T) {
	setup(t)

	flagAsOf = "2024-10-01"
	got, err := asOf()
	require.NoError(t, err)
	assert.Equal(t, model.Date(2024, time.October, 1), got)

	flagAsOf = "yesterday"
	_, err = asOf()
	assert.Error(t, err)

	flagAsOf = ""
	got, err = asOf()
	require.NoError(t, err)
	assert.Equal(t, model.DateOf(time.Now()), got)
}

func TestUnitName(t *testing.T) {
	setup(t)
	assert.Equal(t, "tower-3", unitName("/data/tower-3.csv"))
	assert.Equal(t, "plan", unitName("plan.xlsx"))

	flagUnit = "Villa 9"
	assert.Equal(t, "Villa 9", unitName("/data/tower-3.csv"))
}

func TestReadUnitRecomputesCumulative(t *testing.T) {
	setup(t)
	path := writeFile(t, "a.csv", csvio.SampleCSV)

	u, err := readUnit(path, "A")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)
	require.Len(t, u.Payments, 4)
	assert.True(t, decimal.NewFromInt(375610).Equal(u.Payments[3].Cumulative))
	assert.True(t, u.Payments[0].Covered)
	assert.False(t, u.Payments[3].Covered)
	for _, p := range u.Payments {
		assert.NotEmpty(t, p.ID)
	}
}

func TestReadUnitMapOverride(t *testing.T) {
	setup(t)
	path := writeFile(t, "b.csv", "Stage,When,Value,Paid\nBooking,2025-01-15,1000,true\nHandover,2025-06-15,2500,false\n")

	_, err := readUnit(path, "B")
	require.Error(t, err, "no column maps to the required fields")

	flagMap = []string{"Stage=milestone", "When=dueDate", "Value=amount", "Paid=covered"}
	u, err := readUnit(path, "B")
	require.NoError(t, err)
	require.Len(t, u.Payments, 2)
	assert.Equal(t, "Handover", u.Payments[1].Milestone)
	assert.True(t, decimal.NewFromInt(3500).Equal(u.Payments[1].Cumulative))
	assert.True(t, u.Payments[0].Covered)
}

func TestReadUnitErrors(t *testing.T) {
	setup(t)

	_, err := readUnit(filepath.Join(t.TempDir(), "missing.csv"), "X")
	assert.Error(t, err)

	path := writeFile(t, "bad.csv", "Milestone,Due Date,Amount\nBooking,2025-01-15,lots\n")
	_, err = readUnit(path, "X")
	require.Error(t, err)
	assert.ErrorIs(t, err, csvio.ErrInvalidValue)

	flagMap = []string{"no-equals-sign"}
	_, err = readUnit(writeFile(t, "c.csv", csvio.SampleCSV), "X")
	assert.Error(t, err)
}

func TestInitialLedger(t *testing.T) {
	setup(t)

	l, err := initialLedger()
	require.NoError(t, err)
	assert.Equal(t, []string{"Unit A"}, l.Names())

	cfg.General.DefaultUnit = "Tower 1"
	l, err = initialLedger()
	require.NoError(t, err)
	assert.Equal(t, "Tower 1", l.Active())

	flagUnit = "Villa 9"
	l, err = initialLedger()
	require.NoError(t, err)
	assert.Equal(t, "Villa 9", l.Active())

	flagDemo = true
	l, err = initialLedger()
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())
}

func TestImportInto(t *testing.T) {
	setup(t)
	l, err := initialLedger()
	require.NoError(t, err)
	store := session.New(l, logger)

	require.NoError(t, importInto(store, writeFile(t, "s.csv", csvio.SampleCSV)))
	u, ok := store.Ledger().ActiveUnit()
	require.True(t, ok)
	assert.Len(t, u.Payments, 4)
	_, pending := store.PendingImport()
	assert.False(t, pending)

	// A failed import leaves nothing pending and the unit untouched.
	err = importInto(store, writeFile(t, "bad.csv", "Milestone,Due Date,Amount\nX,not-a-date,10\n"))
	require.Error(t, err)
	_, pending = store.PendingImport()
	assert.False(t, pending)
	u, _ = store.Ledger().ActiveUnit()
	assert.Len(t, u.Payments, 4)
}

func TestRunExport(t *testing.T) {
	setup(t)
	src := writeFile(t, "Tower 1.csv", csvio.SampleCSV)

	for _, format := range []string{"csv", "xlsx"} {
		t.Run(format, func(t *testing.T) {
			exportFormat = format
			exportOut = t.TempDir()
			require.NoError(t, runExport(nil, []string{src}))

			entries, err := os.ReadDir(exportOut)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			name := entries[0].Name()
			assert.True(t, strings.HasPrefix(name, "payments_Tower 1_"), name)
			assert.True(t, strings.HasSuffix(name, "."+format), name)

			table, err := csvio.ReadFile(filepath.Join(exportOut, name))
			require.NoError(t, err)
			assert.Equal(t, csvio.ExportHeaders(), table.Headers)
			assert.Len(t, table.Rows, 4)
		})
	}

	exportFormat = "pdf"
	assert.Error(t, runExport(nil, []string{src}))
}

func TestRunSample(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "nested", "sample.csv")

	require.NoError(t, runSample(nil, []string{path}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, csvio.SampleCSV, string(data))
}

func TestRunSummaryRejectsDuplicateUnits(t *testing.T) {
	setup(t)
	a := writeFile(t, "tower.csv", csvio.SampleCSV)
	b := writeFile(t, "tower.csv", csvio.SampleCSV)

	err := runSummary(nil, []string{a, b})
	assert.ErrorContains(t, err, `both load unit "tower"`)

	flagUnit = "X"
	assert.Error(t, runSummary(nil, []string{a, b}))
}
