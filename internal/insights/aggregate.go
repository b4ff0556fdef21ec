// Package insights derives spending advisories, budget-projection
// alerts, and savings tips from a user's expense ledger. All functions
// are pure over their inputs; the caller supplies the expense rows,
// the category list, the reference date, and (for tip sampling) the
// random source.
package insights

import (
	"fmt"
	"sort"
	"time"

	"masareef/internal/models"
)

// MonthKey formats a date as the zero-padded "YYYY-MM" grouping key.
// Lexicographic order of keys matches chronological order.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// CategoryTotals sums expense amounts grouped by effective category
// name in a single pass. Categories with no expenses in the input do
// not appear in the result.
func CategoryTotals(expenses []models.Expense) map[string]float64 {
	totals := make(map[string]float64)
	for i := range expenses {
		totals[expenses[i].CategoryName()] += expenses[i].Amount
	}
	return totals
}

// MonthlyTotals sums expense amounts grouped by the calendar month of
// each expense's date, keyed by MonthKey.
func MonthlyTotals(expenses []models.Expense) map[string]float64 {
	totals := make(map[string]float64)
	for i := range expenses {
		totals[MonthKey(expenses[i].Date)] += expenses[i].Amount
	}
	return totals
}

// Total sums all expense amounts.
func Total(expenses []models.Expense) float64 {
	var sum float64
	for i := range expenses {
		sum += expenses[i].Amount
	}
	return sum
}

// SortedMonths returns the keys of a monthly totals map in
// chronological order.
func SortedMonths(totals map[string]float64) []string {
	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}
