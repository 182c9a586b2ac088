package csvio

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	in := "\ufeffMilestone,Due Date,Amount\n" +
		"Immediate,2024-06-10,333880\n" +
		"\n" +
		",,\n" +
		"Later,2024-09-10\n" +
		"Extra,2024-10-10,10,ignored\n"

	tbl, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Milestone", "Due Date", "Amount"}, tbl.Headers)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, "333880", tbl.Rows[0]["Amount"])
	assert.Equal(t, "", tbl.Rows[1]["Amount"], "short rows pad with empty cells")
	assert.Equal(t, "10", tbl.Rows[2]["Amount"])
	assert.Len(t, tbl.Rows[2], 3)
}

func TestParseCSVQuotedHeaderAfterBOM(t *testing.T) {
	in := "\ufeff\"Milestone\",\"Due Date\",\"Amount\"\nA,2024-01-01,100\n"

	tbl, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"Milestone", "Due Date", "Amount"}, tbl.Headers)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "100", tbl.Rows[0]["Amount"])
}

func TestParseCSVUTF16(t *testing.T) {
	// "Milestone,Amount\nA,1\n" as UTF-16LE with a BOM.
	var in []byte
	in = append(in, 0xFF, 0xFE)
	for _, r := range "Milestone,Amount\nA,1\n" {
		in = append(in, byte(r), 0)
	}

	tbl, err := ParseCSV(strings.NewReader(string(in)))
	require.NoError(t, err)
	assert.Equal(t, []string{"Milestone", "Amount"}, tbl.Headers)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "1", tbl.Rows[0]["Amount"])
}

func TestParseCSVLines(t *testing.T) {
	in := "Milestone,Due Date,Amount\n" +
		"Immediate,2024-06-10,333880\n" +
		",,\n" +
		"\n" +
		"\"Handover\nkeys\",2024-09-10,1\n" +
		"Later,2024-10-10,2\n"

	tbl, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []int{2, 5, 7}, tbl.Lines)
}

func TestParseCSVSample(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader(SampleCSV))
	require.NoError(t, err)
	assert.Equal(t, []string{"Milestone", "Due Date", "Amount", "Cumulative", "Covered"}, tbl.Headers)
	assert.Len(t, tbl.Rows, 4)
	assert.Len(t, strings.Split(strings.TrimSpace(SampleCSV), "\n"), 5)
}

func TestParseCSVMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"only blank lines", "\n\n"},
		{"duplicate header", "Amount,Amount\n1,2\n"},
		{"unterminated quote", "Milestone,Amount\n\"Immediate,1\n"},
		{"blank header", ",,\n1,2,3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)

			var me *MalformedCSVError
			assert.True(t, errors.As(err, &me))
		})
	}
}

func TestParseCSVBlankHeaderNames(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("Milestone,,Amount\nA,x,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Milestone", "Column 2", "Amount"}, tbl.Headers)
	assert.Equal(t, "x", tbl.Rows[0]["Column 2"])
}

func TestReadFileUnsupported(t *testing.T) {
	_, err := ReadFile("schedule.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
