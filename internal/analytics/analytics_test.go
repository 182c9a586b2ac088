package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loaishar/RealEstateManager/internal/ledger"
	"github.com/loaishar/RealEstateManager/internal/model"
)

func pay(name string, due string, amount int64, covered bool) model.Payment {
	d, err := time.Parse(model.DateLayout, due)
	if err != nil {
		panic(err)
	}
	return model.Payment{Milestone: name, DueDate: d, Amount: decimal.NewFromInt(amount), Covered: covered}
}

func TestSummarize(t *testing.T) {
	u := model.Unit{Name: "A", Payments: []model.Payment{
		pay("one", "2024-01-10", 100, true),
		pay("two", "2024-02-10", 50, false),
	}}

	s := Summarize(u)
	assert.Equal(t, "A", s.Unit)
	assert.Equal(t, "150", s.TotalAmount.String())
	assert.Equal(t, "100", s.CoveredAmount.String())
	assert.Equal(t, "50", s.RemainingAmount.String())
	assert.InDelta(t, 66.67, s.CompletionPercentage, 0.01)
	assert.Equal(t, 2, s.Payments)
	assert.Equal(t, 1, s.CoveredPayments)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(model.Unit{Name: "Empty"})
	assert.True(t, s.TotalAmount.IsZero())
	assert.True(t, s.RemainingAmount.IsZero())
	assert.Zero(t, s.CompletionPercentage)
}

func TestSummarizeLedger(t *testing.T) {
	got := SummarizeLedger(ledger.Demo())
	require.Len(t, got, 2)

	assert.Equal(t, "Unit A", got[0].Unit)
	assert.Equal(t, "361700", got[0].TotalAmount.String())
	assert.Equal(t, "347790", got[0].CoveredAmount.String())
	assert.Equal(t, "13910", got[0].RemainingAmount.String())

	assert.Equal(t, "Unit B", got[1].Unit)
	assert.Equal(t, "315000", got[1].TotalAmount.String())
	assert.Equal(t, "300000", got[1].CoveredAmount.String())

	for _, s := range got {
		assert.True(t, s.TotalAmount.Equal(s.CoveredAmount.Add(s.RemainingAmount)))
		assert.GreaterOrEqual(t, s.CompletionPercentage, 0.0)
		assert.LessOrEqual(t, s.CompletionPercentage, 100.0)
	}

	total := Total("All", got)
	assert.Equal(t, "676700", total.TotalAmount.String())
	assert.Equal(t, 5, total.Payments)
	assert.Equal(t, 3, total.CoveredPayments)
}

func TestStatusBreakdown(t *testing.T) {
	payments := []model.Payment{
		pay("done", "2024-01-01", 10, true),
		pay("late", "2024-05-01", 20, false),
		pay("soon", "2024-06-20", 30, false),
		pay("later", "2024-12-01", 40, false),
		pay("later2", "2025-01-01", 1, false),
	}
	got := StatusBreakdown(payments, model.Date(2024, 6, 10), 0)
	require.Len(t, got, len(model.Statuses))

	want := map[model.Status][2]int64{
		model.StatusCompleted: {1, 10},
		model.StatusOverdue:   {1, 20},
		model.StatusUpcoming:  {1, 30},
		model.StatusScheduled: {2, 41},
	}
	for i, c := range got {
		assert.Equal(t, model.Statuses[i], c.Status)
		w := want[c.Status]
		assert.Equal(t, int(w[0]), c.Count, c.Status)
		assert.True(t, c.Amount.Equal(decimal.NewFromInt(w[1])), c.Status)
	}
}

func TestNextDue(t *testing.T) {
	payments := []model.Payment{
		pay("paid", "2024-06-15", 1, true),
		pay("late", "2024-06-01", 1, false),
		pay("b", "2024-07-01", 1, false),
		pay("a", "2024-06-10", 1, false),
	}

	p, ok := NextDue(payments, model.Date(2024, 6, 10))
	require.True(t, ok)
	assert.Equal(t, "a", p.Milestone, "due today counts")

	p, ok = NextDue(payments, model.Date(2024, 6, 11))
	require.True(t, ok)
	assert.Equal(t, "b", p.Milestone)

	_, ok = NextDue(payments, model.Date(2024, 8, 1))
	assert.False(t, ok)
}

func TestMonthly(t *testing.T) {
	got := Monthly([]model.Payment{
		pay("c", "2024-09-10", 5, false),
		pay("a", "2024-06-10", 10, true),
		pay("b", "2024-06-30", 20, false),
	})
	require.Len(t, got, 2)
	assert.Equal(t, model.Date(2024, 6, 1), got[0].Month)
	assert.Equal(t, "30", got[0].Amount.String())
	assert.Equal(t, "10", got[0].Covered.String())
	assert.Equal(t, model.Date(2024, 9, 1), got[1].Month)
}
