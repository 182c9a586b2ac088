// Package analytics derives per-unit totals, completion and status
// breakdowns from payment schedules. Everything is recomputed on demand.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loaishar/RealEstateManager/internal/ledger"
	"github.com/loaishar/RealEstateManager/internal/model"
)

var hundred = decimal.NewFromInt(100)

// UnitSummary holds the totals for one unit.
type UnitSummary struct {
	Unit                 string
	TotalAmount          decimal.Decimal
	CoveredAmount        decimal.Decimal
	RemainingAmount      decimal.Decimal
	CompletionPercentage float64

	Payments        int
	CoveredPayments int
}

// StatusCount is the number and total amount of payments in one status.
type StatusCount struct {
	Status model.Status
	Count  int
	Amount decimal.Decimal
}

// MonthStats sums payments due in one calendar month.
type MonthStats struct {
	Month   time.Time // first day of the month, UTC
	Amount  decimal.Decimal
	Covered decimal.Decimal
}

// Summarize computes totals for a unit.
func Summarize(u model.Unit) UnitSummary {
	s := UnitSummary{Unit: u.Name, Payments: len(u.Payments)}
	for _, p := range u.Payments {
		s.TotalAmount = s.TotalAmount.Add(p.Amount)
		if p.Covered {
			s.CoveredAmount = s.CoveredAmount.Add(p.Amount)
			s.CoveredPayments++
		}
	}
	s.RemainingAmount = s.TotalAmount.Sub(s.CoveredAmount)
	if s.TotalAmount.IsPositive() {
		s.CompletionPercentage = s.CoveredAmount.Div(s.TotalAmount).Mul(hundred).InexactFloat64()
	}
	return s
}

// SummarizeLedger summarizes every unit in display order.
func SummarizeLedger(l ledger.Ledger) []UnitSummary {
	units := l.Units()
	out := make([]UnitSummary, len(units))
	for i, u := range units {
		out[i] = Summarize(u)
	}
	return out
}

// Total folds several summaries into one, named unit.
func Total(unit string, summaries []UnitSummary) UnitSummary {
	t := UnitSummary{Unit: unit}
	for _, s := range summaries {
		t.TotalAmount = t.TotalAmount.Add(s.TotalAmount)
		t.CoveredAmount = t.CoveredAmount.Add(s.CoveredAmount)
		t.Payments += s.Payments
		t.CoveredPayments += s.CoveredPayments
	}
	t.RemainingAmount = t.TotalAmount.Sub(t.CoveredAmount)
	if t.TotalAmount.IsPositive() {
		t.CompletionPercentage = t.CoveredAmount.Div(t.TotalAmount).Mul(hundred).InexactFloat64()
	}
	return t
}

// StatusBreakdown counts payments per status as of the given date, in
// model.Statuses order. Statuses with no payments are included.
func StatusBreakdown(payments []model.Payment, asOf time.Time, window int) []StatusCount {
	if window <= 0 {
		window = ledger.DefaultUpcomingWindow
	}
	idx := make(map[model.Status]int, len(model.Statuses))
	out := make([]StatusCount, len(model.Statuses))
	for i, st := range model.Statuses {
		idx[st] = i
		out[i].Status = st
	}
	for _, p := range payments {
		c := &out[idx[ledger.ClassifyStatus(p, asOf, window)]]
		c.Count++
		c.Amount = c.Amount.Add(p.Amount)
	}
	return out
}

// NextDue returns the earliest payment that is not covered and is due on or
// after asOf. Ties keep schedule order.
func NextDue(payments []model.Payment, asOf time.Time) (model.Payment, bool) {
	today := model.DateOf(asOf)
	var (
		next  model.Payment
		found bool
	)
	for _, p := range payments {
		if p.Covered || p.DueDate.Before(today) {
			continue
		}
		if !found || p.DueDate.Before(next.DueDate) {
			next, found = p, true
		}
	}
	return next, found
}

// Monthly sums payment amounts by due month, oldest first.
func Monthly(payments []model.Payment) []MonthStats {
	byMonth := make(map[time.Time]*MonthStats)
	for _, p := range payments {
		if p.DueDate.IsZero() {
			continue
		}
		month := time.Date(p.DueDate.Year(), p.DueDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		m, ok := byMonth[month]
		if !ok {
			m = &MonthStats{Month: month}
			byMonth[month] = m
		}
		m.Amount = m.Amount.Add(p.Amount)
		if p.Covered {
			m.Covered = m.Covered.Add(p.Amount)
		}
	}

	out := make([]MonthStats, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out
}
