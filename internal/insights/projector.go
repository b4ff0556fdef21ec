package insights

import (
	"fmt"
	"time"

	"masareef/internal/models"
)

// Alert is a titled, human-readable budget-projection warning.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// projectionThreshold fires the total-spend alert when the projected
// month total exceeds the previous month by more than 20%.
const projectionThreshold = 1.2

// Alert message templates (product copy is Arabic).
const (
	alertTotalTitle    = "تنبيه الإنفاق!"
	alertTotalMsg      = "⚠️ معدل إنفاقك الحالي أعلى بنسبة %.1f%% من الشهر الماضي. حاول خفض إنفاقك لتجنب تجاوز ميزانيتك."
	alertCategoryTitle = "تنبيه %s!"
	alertCategoryMsg   = "⚠️ من المتوقع أن تتجاوز ميزانية %s بنسبة %.1f%% بنهاية الشهر إذا استمر معدل الإنفاق الحالي."
)

// Project linearly extrapolates month-to-date spending to a full-month
// estimate. daysElapsed is 1-based and includes today, so it is never
// zero for a valid date.
func Project(spent float64, daysElapsed, daysInMonth int) float64 {
	return spent / float64(daysElapsed) * float64(daysInMonth)
}

// DaysInMonth returns the number of calendar days in t's month,
// computed as first-of-next-month minus one day.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}

// ProjectAlerts extrapolates the month-to-date spending rate to a
// full-month projection and flags the total and any budgeted category
// likely to overrun. monthToDate covers the 1st of today's month
// through today; previousMonth covers the entire prior month.
// Categories without a positive budget are skipped. Several alerts may
// fire in one call: at most one total-level plus any number of
// category-level alerts.
func ProjectAlerts(monthToDate, previousMonth []models.Expense, categories []models.Category, today time.Time) []Alert {
	var alerts []Alert

	daysElapsed := today.Day()
	daysInMonth := DaysInMonth(today)

	projectedTotal := Project(Total(monthToDate), daysElapsed, daysInMonth)
	previousTotal := Total(previousMonth)

	if previousTotal > 0 && projectedTotal > previousTotal*projectionThreshold {
		increasePct := (projectedTotal - previousTotal) / previousTotal * 100
		alerts = append(alerts, Alert{
			Title:   alertTotalTitle,
			Message: fmt.Sprintf(alertTotalMsg, increasePct),
		})
	}

	byCategory := CategoryTotals(monthToDate)
	for i := range categories {
		cat := &categories[i]
		if cat.Budget <= 0 {
			continue
		}
		projected := Project(byCategory[cat.NameEn], daysElapsed, daysInMonth)
		if projected > cat.Budget {
			overPct := (projected - cat.Budget) / cat.Budget * 100
			alerts = append(alerts, Alert{
				Title:   fmt.Sprintf(alertCategoryTitle, cat.DisplayName()),
				Message: fmt.Sprintf(alertCategoryMsg, cat.DisplayName(), overPct),
			})
		}
	}
	return alerts
}
