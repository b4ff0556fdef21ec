package insights

import (
	"fmt"

	"masareef/internal/models"
)

// Severity classifies an advisory for UI styling.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Advisory is a severity-tagged, human-readable spending insight.
type Advisory struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

const (
	// changeBandPct is the dead band: month-over-month changes within
	// ±changeBandPct produce no advisory.
	changeBandPct = 10.0
	// nearBudgetRatio marks spending as "near budget" above this share.
	nearBudgetRatio = 0.9
)

// Advisory message templates (product copy is Arabic).
const (
	msgSpendingUp   = "إنفاقك هذا الشهر أعلى بنسبة %.1f%% من الشهر الماضي"
	msgSpendingDown = "أحسنت! إنفاقك هذا الشهر أقل بنسبة %.1f%% من الشهر الماضي"
	msgOverBudget   = "تجاوزت ميزانية %s بنسبة %.1f%%"
	msgNearBudget   = "أنت قريب من تجاوز ميزانية %s"
	msgKeepTracking = "استمر في تتبع مصاريفك لرؤية تحليلات أكثر دقة"
)

// Advise compares current-month spending against the previous month
// and each category's budget, and returns the resulting advisories.
// When nothing noteworthy happened it returns exactly one generic
// "keep tracking" advisory, never an empty slice.
func Advise(current, previous []models.Expense, categories []models.Category) []Advisory {
	var advisories []Advisory

	currentTotal := Total(current)
	previousTotal := Total(previous)

	// Guard against dividing by an empty previous month.
	if previousTotal > 0 {
		changePct := (currentTotal - previousTotal) / previousTotal * 100
		switch {
		case changePct > changeBandPct:
			advisories = append(advisories, Advisory{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf(msgSpendingUp, changePct),
			})
		case changePct < -changeBandPct:
			advisories = append(advisories, Advisory{
				Severity: SeveritySuccess,
				Message:  fmt.Sprintf(msgSpendingDown, -changePct),
			})
		}
	}

	byCategory := CategoryTotals(current)
	for i := range categories {
		cat := &categories[i]
		if cat.Budget <= 0 {
			continue
		}
		spent := byCategory[cat.NameEn]
		switch {
		case spent > cat.Budget:
			overPct := (spent - cat.Budget) / cat.Budget * 100
			advisories = append(advisories, Advisory{
				Severity: SeverityDanger,
				Message:  fmt.Sprintf(msgOverBudget, cat.DisplayName(), overPct),
			})
		case spent > cat.Budget*nearBudgetRatio:
			advisories = append(advisories, Advisory{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf(msgNearBudget, cat.DisplayName()),
			})
		}
	}

	if len(advisories) == 0 {
		advisories = append(advisories, Advisory{
			Severity: SeverityInfo,
			Message:  msgKeepTracking,
		})
	}
	return advisories
}
