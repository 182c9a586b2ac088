package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/loaishar/RealEstateManager/internal/model"
)

func TestClassifyStatus(t *testing.T) {
	asOf := model.Date(2024, time.January, 1)

	cases := []struct {
		name    string
		due     time.Time
		covered bool
		want    model.Status
	}{
		{"past due unpaid", model.Date(2023, time.December, 1), false, model.StatusOverdue},
		{"within window", model.Date(2024, time.January, 15), false, model.StatusUpcoming},
		{"far future", model.Date(2024, time.June, 1), false, model.StatusScheduled},
		{"covered past", model.Date(2023, time.December, 1), true, model.StatusCompleted},
		{"covered future", model.Date(2024, time.June, 1), true, model.StatusCompleted},
		{"due today", asOf, false, model.StatusUpcoming},
		{"window edge inclusive", model.Date(2024, time.January, 31), false, model.StatusUpcoming},
		{"day after window", model.Date(2024, time.February, 1), false, model.StatusScheduled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := model.Payment{DueDate: tc.due, Amount: decimal.NewFromInt(1), Covered: tc.covered}
			assert.Equal(t, tc.want, Classify(p, asOf))
		})
	}
}

func TestClassifyStatusIgnoresClock(t *testing.T) {
	asOf := time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC)
	p := model.Payment{DueDate: model.Date(2024, time.January, 1)}
	assert.Equal(t, model.StatusUpcoming, Classify(p, asOf))
}

func TestClassifyStatusDoesNotMutateAsOf(t *testing.T) {
	asOf := model.Date(2024, time.January, 1)
	before := asOf
	for i := 0; i < 3; i++ {
		_ = Classify(model.Payment{DueDate: model.Date(2024, time.March, 1)}, asOf)
	}
	assert.True(t, before.Equal(asOf))
	assert.Equal(t, model.StatusScheduled, Classify(model.Payment{DueDate: model.Date(2024, time.March, 1)}, asOf))
}

func TestClassifyStatusCustomWindow(t *testing.T) {
	asOf := model.Date(2024, time.January, 1)
	p := model.Payment{DueDate: model.Date(2024, time.January, 10)}
	assert.Equal(t, model.StatusScheduled, ClassifyStatus(p, asOf, 7))
	assert.Equal(t, model.StatusUpcoming, ClassifyStatus(p, asOf, 9))
}
