package domain

import "math"

// GroupSummary aggregates every task log sharing a team and status.
type GroupSummary struct {
	Team         Team   `json:"team"`
	Status       Status `json:"status"`
	TotalTasks   int64  `json:"total_tasks"`
	TotalMinutes int64  `json:"total_minutes"`
}

// Totals is the store-wide roll-up of a set of group summaries.
type Totals struct {
	TotalTasks   int64 `json:"total_tasks"`
	TotalMinutes int64 `json:"total_minutes"`
}

// SumGroups adds up group summaries into store-wide totals.
// TotalMinutes saturates at math.MaxInt64.
func SumGroups(groups []*GroupSummary) Totals {
	var totals Totals
	for _, g := range groups {
		totals.TotalTasks += g.TotalTasks
		if totals.TotalMinutes > math.MaxInt64-g.TotalMinutes {
			totals.TotalMinutes = math.MaxInt64
		} else {
			totals.TotalMinutes += g.TotalMinutes
		}
	}
	return totals
}
