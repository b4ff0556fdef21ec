package services

import (
	"time"

	"masareef/internal/insights"
	"masareef/internal/models"
	"masareef/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(username, password string) (*models.User, error)
	StoreRefreshTokenHash(userID string, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, nameEn, nameAr string, budget float64) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetAllUserCategories(userID string) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	GetCategoryByName(userID, nameEn string) (*models.Category, error)
	UpdateCategory(userID, categoryID, nameEn, nameAr string, budget *float64) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
	SeedDefaults(userID string) error
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Category   *string
	CategoryID *string
	FromDate   *time.Time
	ToDate     *time.Time
}

// ExpenseServicer defines the contract for the expense ledger.
type ExpenseServicer interface {
	CreateExpense(userID string, categoryID *string, category string, amount float64, date time.Time, description string) (*models.Expense, error)
	GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, categoryID *string, category string, amount *float64, date *time.Time, description *string) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
	GetExpensesByDateRange(userID string, from, to time.Time) ([]models.Expense, error)
	GetExpensesByCategory(userID, categoryName string) ([]models.Expense, error)
}

// DashboardSummary aggregates the current month for the dashboard view.
type DashboardSummary struct {
	TotalSpent     float64            `json:"total_spent"`
	CategoryTotals map[string]float64 `json:"category_totals"`
	DisplayTotals  map[string]float64 `json:"display_totals"`
	CategoryNames  map[string]string  `json:"category_names"`
	Alerts         []insights.Alert   `json:"alerts"`
	Tips           []insights.Tip     `json:"tips"`
}

// BudgetStatus pairs a category with its current-month spending.
type BudgetStatus struct {
	Category   models.Category `json:"category"`
	Spent      float64         `json:"spent"`
	Percentage float64         `json:"percentage"`
}

// MonthlySeries holds chronologically sorted month labels and totals
// for charting.
type MonthlySeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// InsightServicer defines the contract for the analytics engine.
type InsightServicer interface {
	GetAdvisories(userID string) ([]insights.Advisory, error)
	GetSpendingAlerts(userID string) ([]insights.Alert, error)
	GetSavingsTips(userID string) ([]insights.Tip, error)
	GetDashboard(userID string) (*DashboardSummary, error)
	GetBudgetStatus(userID string) ([]BudgetStatus, error)
	GetMonthlyTotals(userID string) (*MonthlySeries, error)
}
