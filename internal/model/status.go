package model

import "strings"

// Status is the coarse schedule state of a payment relative to a date.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusUpcoming  Status = "upcoming"
	StatusScheduled Status = "scheduled"
)

// Statuses lists every status in filter-bar order.
var Statuses = []Status{StatusCompleted, StatusUpcoming, StatusOverdue, StatusScheduled}

// Title returns the status with its first letter upper-cased.
func (s Status) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(s string) (Status, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}
