package insights

import (
	"math"
	"reflect"
	"sort"
	"testing"
	"time"

	"masareef/internal/models"
)

func expense(category string, amount float64, date time.Time) models.Expense {
	return models.Expense{
		UserID:   "u1",
		Category: category,
		Amount:   amount,
		Date:     date,
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(date(2025, time.March, 7)); got != "2025-03" {
		t.Errorf("expected 2025-03, got %s", got)
	}
	if got := MonthKey(date(2025, time.December, 31)); got != "2025-12" {
		t.Errorf("expected 2025-12, got %s", got)
	}
}

func TestCategoryTotals(t *testing.T) {
	t.Run("groups_by_category", func(t *testing.T) {
		expenses := []models.Expense{
			expense("Food", 50, date(2025, time.May, 1)),
			expense("Food", 30, date(2025, time.May, 2)),
			expense("Transport", 20, date(2025, time.May, 3)),
		}

		totals := CategoryTotals(expenses)
		if len(totals) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(totals))
		}
		if !almostEqual(totals["Food"], 80) {
			t.Errorf("expected Food total 80, got %v", totals["Food"])
		}
		if !almostEqual(totals["Transport"], 20) {
			t.Errorf("expected Transport total 20, got %v", totals["Transport"])
		}
	})

	t.Run("empty_input_yields_empty_map", func(t *testing.T) {
		totals := CategoryTotals(nil)
		if len(totals) != 0 {
			t.Errorf("expected empty map, got %v", totals)
		}
	})

	t.Run("prefers_linked_category_name", func(t *testing.T) {
		e := expense("food (old)", 10, date(2025, time.May, 1))
		e.CategoryRef = &models.Category{NameEn: "Food", NameAr: "طعام"}

		totals := CategoryTotals([]models.Expense{e})
		if !almostEqual(totals["Food"], 10) {
			t.Errorf("expected total under linked name, got %v", totals)
		}
	})

	t.Run("conservation", func(t *testing.T) {
		expenses := []models.Expense{
			expense("Food", 12.5, date(2025, time.May, 1)),
			expense("Bills", 99.99, date(2025, time.May, 2)),
			expense("Other", 0.01, date(2025, time.May, 3)),
			expense("Food", 7.49, date(2025, time.May, 4)),
		}

		var sum float64
		for _, v := range CategoryTotals(expenses) {
			sum += v
		}
		if !almostEqual(sum, Total(expenses)) {
			t.Errorf("category totals sum %v != total %v", sum, Total(expenses))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		expenses := []models.Expense{
			expense("Food", 50, date(2025, time.May, 1)),
			expense("Transport", 20, date(2025, time.May, 3)),
		}

		first := CategoryTotals(expenses)
		second := CategoryTotals(expenses)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("expected identical results, got %v then %v", first, second)
		}
	})
}

func TestMonthlyTotals(t *testing.T) {
	t.Run("groups_by_calendar_month", func(t *testing.T) {
		expenses := []models.Expense{
			expense("Food", 100, date(2025, time.April, 30)),
			expense("Food", 40, date(2025, time.May, 1)),
			expense("Bills", 60, date(2025, time.May, 31)),
		}

		totals := MonthlyTotals(expenses)
		if !almostEqual(totals["2025-04"], 100) {
			t.Errorf("expected 2025-04 total 100, got %v", totals["2025-04"])
		}
		if !almostEqual(totals["2025-05"], 100) {
			t.Errorf("expected 2025-05 total 100, got %v", totals["2025-05"])
		}
	})

	t.Run("sorted_keys_are_chronological", func(t *testing.T) {
		expenses := []models.Expense{
			expense("Food", 1, date(2025, time.November, 1)),
			expense("Food", 1, date(2024, time.December, 1)),
			expense("Food", 1, date(2025, time.February, 1)),
		}

		months := SortedMonths(MonthlyTotals(expenses))
		want := []string{"2024-12", "2025-02", "2025-11"}
		if !reflect.DeepEqual(months, want) {
			t.Errorf("expected %v, got %v", want, months)
		}
		if !sort.StringsAreSorted(months) {
			t.Error("expected sorted month keys")
		}
	})
}

func TestTotal(t *testing.T) {
	if got := Total(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}

	expenses := []models.Expense{
		expense("Food", 1.5, date(2025, time.May, 1)),
		expense("Bills", 2.5, date(2025, time.May, 2)),
	}
	if got := Total(expenses); !almostEqual(got, 4) {
		t.Errorf("expected 4, got %v", got)
	}
}
