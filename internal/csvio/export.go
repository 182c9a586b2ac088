package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loaishar/RealEstateManager/internal/model"
)

// SampleFilename is the default name for the downloaded sample.
const SampleFilename = "sample_payments.csv"

// SampleCSV is a small schedule users can download to see the expected
// import format.
const SampleCSV = `Milestone,Due Date,Amount,Cumulative,Covered
Immediate,2024-06-10,333880,333880,true
Within 3 month(s),2024-09-10,13910,347790,true
Within 4 month(s),2024-10-10,13910,361700,false
Within 5 month(s),2024-11-10,13910,375610,false
`

// ExportHeaders returns the export column headers in order.
func ExportHeaders() []string {
	headers := make([]string, len(model.Fields))
	for i, f := range model.Fields {
		headers[i] = f.Label()
	}
	return headers
}

// WriteCSV writes payments with the export header, one row per payment.
func WriteCSV(w io.Writer, payments []model.Payment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeaders()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, p := range payments {
		if err := cw.Write(exportRecord(p)); err != nil {
			return fmt.Errorf("writing payment %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSample writes SampleCSV to w.
func WriteSample(w io.Writer) error {
	_, err := io.WriteString(w, SampleCSV)
	return err
}

// ExportFilename returns payments_<unit>_<timestamp><ext>, with the time in
// UTC at millisecond precision.
func ExportFilename(unit string, at time.Time, ext string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, unit)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("payments_%s_%s%s", name, at.UTC().Format("2006-01-02T15:04:05.000Z"), ext)
}

func exportRecord(p model.Payment) []string {
	return []string{
		p.Milestone,
		p.DueDate.Format(model.DateLayout),
		p.Amount.String(),
		p.Cumulative.String(),
		strconv.FormatBool(p.Covered),
		optional(p.Transferred),
		optional(p.TotalCovered),
		optional(p.Remaining),
	}
}

func optional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
