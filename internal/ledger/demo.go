package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loaishar/RealEstateManager/internal/model"
)

// Demo returns a ledger seeded with two example units, for trying the
// dashboard without an import file.
func Demo() Ledger {
	l, err := New(
		model.Unit{
			Name: "Unit A",
			Payments: []model.Payment{
				{
					Milestone:    "Immediate",
					DueDate:      model.Date(2024, time.June, 10),
					Amount:       decimal.NewFromInt(333880),
					Covered:      true,
					Transferred:  model.Dec(417160),
					TotalCovered: model.Dec(403430),
					Remaining:    model.Dec(13730),
				},
				{Milestone: "Within 3 month(s)", DueDate: model.Date(2024, time.September, 10), Amount: decimal.NewFromInt(13910), Covered: true},
				{Milestone: "Within 4 month(s)", DueDate: model.Date(2024, time.October, 10), Amount: decimal.NewFromInt(13910)},
			},
		},
		model.Unit{
			Name: "Unit B",
			Payments: []model.Payment{
				{
					Milestone:    "Immediate",
					DueDate:      model.Date(2024, time.July, 10),
					Amount:       decimal.NewFromInt(300000),
					Covered:      true,
					Transferred:  model.Dec(300000),
					TotalCovered: model.Dec(300000),
					Remaining:    model.Dec(0),
				},
				{Milestone: "Within 3 month(s)", DueDate: model.Date(2024, time.October, 10), Amount: decimal.NewFromInt(15000)},
			},
		},
	)
	if err != nil {
		panic("ledger: invalid demo data: " + err.Error())
	}
	return l
}
