package ledger

import (
	"time"

	"github.com/loaishar/RealEstateManager/internal/model"
)

// DefaultUpcomingWindow is the number of days ahead of the reference date
// in which an unpaid payment counts as upcoming.
const DefaultUpcomingWindow = 30

// Classify derives a payment's status with the default upcoming window.
func Classify(p model.Payment, asOf time.Time) model.Status {
	return ClassifyStatus(p, asOf, DefaultUpcomingWindow)
}

// ClassifyStatus derives a payment's status relative to the calendar date
// of asOf. Covered payments are completed; unpaid ones are overdue when due
// before asOf, upcoming when due within windowDays of it (inclusive), and
// scheduled otherwise.
func ClassifyStatus(p model.Payment, asOf time.Time, windowDays int) model.Status {
	if p.Covered {
		return model.StatusCompleted
	}

	today := model.DateOf(asOf)
	due := model.DateOf(p.DueDate)
	if due.Before(today) {
		return model.StatusOverdue
	}

	horizon := today.AddDate(0, 0, windowDays)
	if !due.After(horizon) {
		return model.StatusUpcoming
	}
	return model.StatusScheduled
}
