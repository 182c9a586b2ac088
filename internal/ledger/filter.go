package ledger

import (
	"strings"
	"time"

	"github.com/loaishar/RealEstateManager/internal/model"
)

// Query selects payments for display.
type Query struct {
	Search string       // case-insensitive milestone substring; empty matches all
	Status model.Status // empty matches every status
	AsOf   time.Time
	Window int // upcoming window in days; zero uses DefaultUpcomingWindow
}

// Filter returns the payments matching q, preserving order.
func Filter(payments []model.Payment, q Query) []model.Payment {
	window := q.Window
	if window <= 0 {
		window = DefaultUpcomingWindow
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))

	var result []model.Payment
	for _, p := range payments {
		if search != "" && !strings.Contains(strings.ToLower(p.Milestone), search) {
			continue
		}
		if q.Status != "" && ClassifyStatus(p, q.AsOf, window) != q.Status {
			continue
		}
		result = append(result, p)
	}
	return result
}
