package internal

import "sort"

// CategoryTotal is one category's share of the total.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Summary is the derived aggregate view. It is never persisted and is
// recomputed on demand from the full expense list.
type Summary struct {
	TotalSpent   float64         `json:"total_spent"`
	MonthlyLimit float64         `json:"monthly_limit"`
	Remaining    float64         `json:"remaining_budget"`
	Categories   []CategoryTotal `json:"per_category_totals"`
}

// Summarize computes spending totals for the given expenses against the
// monthly limit. Categories are ordered alphabetically so output is
// stable across runs; expenses without a category land in
// Uncategorized. Remaining may be negative, which simply means the
// budget is overspent.
func Summarize(expenses []Expense, monthlyLimit float64) Summary {
	byCategory := make(map[string]float64)
	var total float64
	for _, e := range expenses {
		total += e.Amount
		byCategory[e.CategoryOrDefault()] += e.Amount
	}

	categories := make([]CategoryTotal, 0, len(byCategory))
	for name, sum := range byCategory {
		categories = append(categories, CategoryTotal{Category: name, Total: sum})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	return Summary{
		TotalSpent:   total,
		MonthlyLimit: monthlyLimit,
		Remaining:    monthlyLimit - total,
		Categories:   categories,
	}
}
