// Package model defines domain types for unit payment schedules.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date layout used for due dates.
const DateLayout = "2006-01-02"

// Payment is one milestone payment in a unit's schedule.
type Payment struct {
	ID         string
	Milestone  string
	DueDate    time.Time
	Amount     decimal.Decimal
	Cumulative decimal.Decimal // running sum of Amount up to and including this payment
	Covered    bool

	// Settlement details, set only when known.
	Transferred  *decimal.Decimal
	TotalCovered *decimal.Decimal
	Remaining    *decimal.Decimal
}

// Draft is the user-entered form of a payment. It has no ID and no
// cumulative amount; both are assigned by the ledger.
type Draft struct {
	Milestone    string           `validate:"required"`
	DueDate      time.Time        `validate:"required"`
	Amount       *decimal.Decimal `validate:"required"`
	Covered      bool
	Transferred  *decimal.Decimal
	TotalCovered *decimal.Decimal
	Remaining    *decimal.Decimal
}

// Draft returns the editable fields of p.
func (p Payment) Draft() Draft {
	amount := p.Amount
	return Draft{
		Milestone:    p.Milestone,
		DueDate:      p.DueDate,
		Amount:       &amount,
		Covered:      p.Covered,
		Transferred:  copyDecimal(p.Transferred),
		TotalCovered: copyDecimal(p.TotalCovered),
		Remaining:    copyDecimal(p.Remaining),
	}
}

// Payment builds a payment with the given ID from a validated draft.
// Cumulative is left zero for the ledger to fill in.
func (d Draft) Payment(id string) Payment {
	p := Payment{
		ID:           id,
		Milestone:    d.Milestone,
		DueDate:      DateOf(d.DueDate),
		Covered:      d.Covered,
		Transferred:  copyDecimal(d.Transferred),
		TotalCovered: copyDecimal(d.TotalCovered),
		Remaining:    copyDecimal(d.Remaining),
	}
	if d.Amount != nil {
		p.Amount = *d.Amount
	}
	return p
}

// Unit is a real-estate unit and its ordered payment schedule.
// Payment order is display order, not due-date order.
type Unit struct {
	Name     string
	Payments []Payment
}

// Index returns the position of the payment with the given ID, or -1.
func (u Unit) Index(id string) int {
	for i, p := range u.Payments {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Date returns the calendar date y-m-d as a UTC midnight time.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOf strips the clock from t, keeping the calendar date as seen in t's
// own location.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Dec is shorthand for a decimal pointer, used for optional amounts.
func Dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	cp := *d
	return &cp
}
