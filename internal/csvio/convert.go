package csvio

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loaishar/RealEstateManager/internal/model"
)

// dateLayouts are tried in order when reading a due date cell. Slash dates
// are month first.
var dateLayouts = []string{
	model.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
}

// Result is the outcome of applying a mapping to a table.
type Result struct {
	Drafts   []model.Draft
	Warnings []Warning
}

type column struct {
	header string
	field  model.Field
}

// ApplyMapping converts every row of t into a payment draft. Columns are
// applied in header order, so when several headers target one field the
// last one wins. The first conversion error aborts the whole import.
func ApplyMapping(t Table, m Mapping) (Result, error) {
	res := Result{Warnings: m.Check(t.Headers)}

	var cols []column
	for _, h := range t.Headers {
		if f := m[h]; f != model.FieldNone {
			cols = append(cols, column{header: h, field: f})
		}
	}

	res.Drafts = make([]model.Draft, 0, len(t.Rows))
	for i, row := range t.Rows {
		var d model.Draft
		pos := cellPos{row: i + 1, line: t.line(i)}
		for _, c := range cols {
			if err := setField(&d, c, row[c.header], pos); err != nil {
				return Result{}, err
			}
		}
		res.Drafts = append(res.Drafts, d)
	}
	return res, nil
}

// cellPos locates a row for error reports.
type cellPos struct {
	row  int
	line int
}

func setField(d *model.Draft, c column, raw string, pos cellPos) error {
	value := strings.TrimSpace(raw)

	switch c.field.Type() {
	case model.TextType:
		d.Milestone = value
	case model.BoolType:
		d.Covered = strings.EqualFold(value, "true")
	case model.DateType:
		t, ok := ParseDate(value)
		if !ok {
			return &InvalidDateError{Row: pos.row, Line: pos.line, Header: c.header, Value: raw}
		}
		d.DueDate = t
	case model.NumberType:
		if value == "" {
			if c.field == model.FieldAmount {
				return &InvalidNumberError{Row: pos.row, Line: pos.line, Header: c.header, Value: raw}
			}
			return nil
		}
		n, err := decimal.NewFromString(value)
		if err != nil {
			return &InvalidNumberError{Row: pos.row, Line: pos.line, Header: c.header, Value: raw}
		}
		switch c.field {
		case model.FieldAmount:
			d.Amount = &n
		case model.FieldTransferred:
			d.Transferred = &n
		case model.FieldTotalCovered:
			d.TotalCovered = &n
		case model.FieldRemaining:
			d.Remaining = &n
		}
		// Cumulative is always recomputed; the column is only checked.
	}
	return nil
}

// ParseDate reads a calendar date in any of the accepted layouts. Timestamps
// with an offset are reduced to their UTC date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOf(t.UTC()), true
		}
	}
	return time.Time{}, false
}
