// Package stats derives aggregate views from a snapshot of expenses.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spend/internal/model"
)

// CategoryTotal is the summed amount and count for one category.
type CategoryTotal struct {
	Category model.Category
	Total    decimal.Decimal
	Count    int
}

// Snapshot is the result of Compute.
type Snapshot struct {
	Total                   decimal.Decimal
	TransactionCount        int
	MonthlyTotal            decimal.Decimal
	MonthlyTransactionCount int
	TopCategory             model.Category // empty when there are no records
	TopCategoryTotal        decimal.Decimal
	ByCategory              []CategoryTotal
}

// HasTopCategory reports whether a top category exists.
func (s Snapshot) HasTopCategory() bool {
	return len(s.ByCategory) > 0
}

// Compute aggregates records relative to ref. The current month is ref's
// year and month in ref's location; expenses are matched on Date, not
// CreatedAt.
//
// ByCategory is ordered by descending total. Equal totals keep the order in
// which each category first appears in records, so the first-seen category
// wins a tie for TopCategory.
func Compute(records []model.Expense, ref time.Time) Snapshot {
	snap := Snapshot{
		Total:            decimal.Zero,
		MonthlyTotal:     decimal.Zero,
		TopCategoryTotal: decimal.Zero,
	}
	year, month, _ := ref.Date()

	index := make(map[model.Category]int)
	var groups []CategoryTotal
	for _, e := range records {
		snap.Total = snap.Total.Add(e.Amount)
		snap.TransactionCount++

		if e.InMonth(year, month) {
			snap.MonthlyTotal = snap.MonthlyTotal.Add(e.Amount)
			snap.MonthlyTransactionCount++
		}

		i, seen := index[e.Category]
		if !seen {
			i = len(groups)
			index[e.Category] = i
			groups = append(groups, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(e.Amount)
		groups[i].Count++
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Total.GreaterThan(groups[b].Total)
	})
	snap.ByCategory = groups

	if len(groups) > 0 {
		snap.TopCategory = groups[0].Category
		snap.TopCategoryTotal = groups[0].Total
	}
	return snap
}
