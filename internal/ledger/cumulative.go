package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/loaishar/RealEstateManager/internal/model"
)

// RecomputeCumulative returns a copy of payments whose Cumulative fields
// hold the running sum of Amount in list order. The input is not modified
// and applying it to already-correct data yields the same values.
func RecomputeCumulative(payments []model.Payment) []model.Payment {
	out := make([]model.Payment, len(payments))
	running := decimal.Zero
	for i, p := range payments {
		running = running.Add(p.Amount)
		p.Cumulative = running
		out[i] = p
	}
	return out
}
