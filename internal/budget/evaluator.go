// Package budget compares period spending against configured limits.
package budget

import "momopress/internal/models"

// GeneralLabel is the alert label of the overall limit.
const GeneralLabel = "Overall Monthly Spending"

// Aggregates maps each category to the amount spent in a window.
type Aggregates map[models.Category]int64

// Total sums every category.
func (a Aggregates) Total() int64 {
	var total int64
	for _, v := range a {
		total += v
	}
	return total
}

// Alert reports a limit that spending has gone past. Category is empty for
// the general limit.
type Alert struct {
	Category models.Category `json:"category,omitempty"`
	Label    string          `json:"label"`
	Limit    int64           `json:"limit"`
	Spent    int64           `json:"spent"`
	Exceeded int64           `json:"exceeded"`
}

// Evaluate checks the general limit against the sum of all categories, then
// each category limit against its own aggregate, in models.Categories order.
// A zero limit is disabled. An alert needs spending strictly above the limit.
func Evaluate(limits models.BudgetLimits, agg Aggregates) []Alert {
	var alerts []Alert

	if a, ok := check(limits.General, agg.Total()); ok {
		a.Label = GeneralLabel
		alerts = append(alerts, a)
	}

	for _, c := range models.Categories {
		if a, ok := check(limits.For(c), agg[c]); ok {
			a.Category = c
			a.Label = c.Label()
			alerts = append(alerts, a)
		}
	}
	return alerts
}

func check(limit, spent int64) (Alert, bool) {
	if limit <= 0 || spent <= limit {
		return Alert{}, false
	}
	return Alert{Limit: limit, Spent: spent, Exceeded: spent - limit}, true
}
