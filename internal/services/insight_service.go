package services

import (
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	apperrors "masareef/internal/errors"
	"masareef/internal/insights"
	"masareef/internal/models"
)

// insightService runs the analytics engine over the ledger. The clock
// and random source are injected so month-boundary behavior and tip
// sampling are reproducible in tests.
type insightService struct {
	db  *gorm.DB
	now func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewInsightService creates a new InsightServicer. A nil now defaults
// to time.Now; a nil rng defaults to a time-seeded source.
func NewInsightService(db *gorm.DB, now func() time.Time, rng *rand.Rand) InsightServicer {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &insightService{db: db, now: now, rng: rng}
}

// today returns the current calendar date at midnight UTC. Expense
// dates are stored the same way, so inclusive range comparisons line up.
func (s *insightService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// monthWindow returns the first and last day of the month containing t.
func monthWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// expensesBetween reads the user's expenses dated within [from, to].
func (s *insightService) expensesBetween(userID string, from, to time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Preload("CategoryRef").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// userCategories reads the user's full category list.
func (s *insightService) userCategories(userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name_en").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetAdvisories compares this month against last month and each
// category against its budget.
func (s *insightService) GetAdvisories(userID string) ([]insights.Advisory, error) {
	today := s.today()
	curStart, curEnd := monthWindow(today)
	prevStart, prevEnd := monthWindow(curStart.AddDate(0, 0, -1))

	current, err := s.expensesBetween(userID, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	previous, err := s.expensesBetween(userID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	categories, err := s.userCategories(userID)
	if err != nil {
		return nil, err
	}

	return insights.Advise(current, previous, categories), nil
}

// GetSpendingAlerts projects month-to-date spending to a full-month
// estimate and flags likely overruns.
func (s *insightService) GetSpendingAlerts(userID string) ([]insights.Alert, error) {
	today := s.today()
	curStart, _ := monthWindow(today)
	prevStart, prevEnd := monthWindow(curStart.AddDate(0, 0, -1))

	monthToDate, err := s.expensesBetween(userID, curStart, today)
	if err != nil {
		return nil, err
	}
	previousMonth, err := s.expensesBetween(userID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	categories, err := s.userCategories(userID)
	if err != nil {
		return nil, err
	}

	return insights.ProjectAlerts(monthToDate, previousMonth, categories, today), nil
}

// GetSavingsTips samples savings advice, biased by which categories saw
// spending this month.
func (s *insightService) GetSavingsTips(userID string) ([]insights.Tip, error) {
	curStart, curEnd := monthWindow(s.today())
	monthly, err := s.expensesBetween(userID, curStart, curEnd)
	if err != nil {
		return nil, err
	}

	spending := insights.CategoryTotals(monthly)

	// rand.Rand is not safe for concurrent use across requests.
	s.mu.Lock()
	defer s.mu.Unlock()
	return insights.SelectTips(spending, s.rng), nil
}

// GetDashboard assembles the current-month dashboard: total spend,
// category totals with Arabic display names, alerts, and tips.
func (s *insightService) GetDashboard(userID string) (*DashboardSummary, error) {
	curStart, curEnd := monthWindow(s.today())
	monthly, err := s.expensesBetween(userID, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	categories, err := s.userCategories(userID)
	if err != nil {
		return nil, err
	}

	displayNames := make(map[string]string, len(categories))
	for i := range categories {
		displayNames[categories[i].NameEn] = categories[i].DisplayName()
	}

	categoryTotals := insights.CategoryTotals(monthly)
	displayTotals := make(map[string]float64, len(categoryTotals))
	categoryNames := make(map[string]string, len(categoryTotals))
	for name, total := range categoryTotals {
		display := displayNames[name]
		if display == "" {
			display = name
		}
		displayTotals[display] += total
		categoryNames[display] = name
	}

	alerts, err := s.GetSpendingAlerts(userID)
	if err != nil {
		return nil, err
	}
	tips, err := s.GetSavingsTips(userID)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalSpent:     insights.Total(monthly),
		CategoryTotals: categoryTotals,
		DisplayTotals:  displayTotals,
		CategoryNames:  categoryNames,
		Alerts:         alerts,
		Tips:           tips,
	}, nil
}

// GetBudgetStatus reports current-month spend and percentage of budget
// for every category. Percentage is 0 for categories without a budget.
func (s *insightService) GetBudgetStatus(userID string) ([]BudgetStatus, error) {
	curStart, curEnd := monthWindow(s.today())
	monthly, err := s.expensesBetween(userID, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	categories, err := s.userCategories(userID)
	if err != nil {
		return nil, err
	}

	totals := insights.CategoryTotals(monthly)
	statuses := make([]BudgetStatus, 0, len(categories))
	for i := range categories {
		cat := categories[i]
		spent := totals[cat.NameEn]
		var percentage float64
		if cat.Budget > 0 {
			percentage = spent / cat.Budget * 100
		}
		statuses = append(statuses, BudgetStatus{
			Category:   cat,
			Spent:      spent,
			Percentage: percentage,
		})
	}
	return statuses, nil
}

// GetMonthlyTotals returns the full spending history grouped by month,
// chronologically sorted for charting.
func (s *insightService) GetMonthlyTotals(userID string) (*MonthlySeries, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := insights.MonthlyTotals(expenses)
	labels := insights.SortedMonths(totals)
	values := make([]float64, len(labels))
	for i, label := range labels {
		values[i] = totals[label]
	}
	return &MonthlySeries{Labels: labels, Values: values}, nil
}
