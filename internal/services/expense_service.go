package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "masareef/internal/errors"
	"masareef/internal/models"
	"masareef/internal/pagination"
)

// expenseService is the Ledger Store: it owns all reads and writes of
// expense rows, scoped to one user per call.
type expenseService struct {
	db         *gorm.DB
	categories CategoryServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, categories CategoryServicer) ExpenseServicer {
	return &expenseService{db: db, categories: categories}
}

// resolveCategory resolves the category reference for a write. An
// explicit categoryID wins; otherwise the free-text name is looked up
// by English name. A name that matches nothing is stored as-is with a
// nil reference (legacy laxity, kept deliberately).
func (s *expenseService) resolveCategory(userID string, categoryID *string, name string) (*string, string, error) {
	if categoryID != nil && *categoryID != "" {
		category, err := s.categories.GetCategoryByID(userID, *categoryID)
		if err != nil {
			return nil, "", err
		}
		return &category.ID, category.NameEn, nil
	}

	category, err := s.categories.GetCategoryByName(userID, name)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCategoryNotFound.Code {
			return nil, name, nil
		}
		return nil, "", err
	}
	return &category.ID, category.NameEn, nil
}

// CreateExpense records a new expense for the user.
func (s *expenseService) CreateExpense(userID string, categoryID *string, category string, amount float64, date time.Time, description string) (*models.Expense, error) {
	if categoryID == nil && category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	resolvedID, resolvedName, err := s.resolveCategory(userID, categoryID, category)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		Category:    resolvedName,
		CategoryID:  resolvedID,
		Amount:      amount,
		Date:        date,
		Description: description,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// applyExpenseFilters narrows a query by the optional filter fields.
func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	return q
}

// GetUserExpenses retrieves a paginated, filtered list of the user's
// expenses, newest first.
func (s *expenseService) GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := applyExpenseFilters(s.db.Model(&models.Expense{}).Where("user_id = ?", userID), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Preload("CategoryRef").Order("date DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user.
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("CategoryRef").
		Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense mutates an expense in place.
func (s *expenseService) UpdateExpense(userID, expenseID string, categoryID *string, category string, amount *float64, date *time.Time, description *string) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if categoryID != nil || category != "" {
		resolvedID, resolvedName, err := s.resolveCategory(userID, categoryID, category)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = resolvedID
		updates["category"] = resolvedName
	}
	if amount != nil {
		if *amount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
		}
		updates["amount"] = *amount
	}
	if date != nil {
		updates["date"] = *date
	}
	if description != nil {
		updates["description"] = *description
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetExpenseByID(userID, expenseID)
}

// DeleteExpense soft-deletes an expense.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetExpensesByDateRange returns all expenses dated within [from, to],
// both ends inclusive. An empty result is not an error; a failed read
// is, and propagates rather than masquerading as an empty month.
func (s *expenseService) GetExpensesByDateRange(userID string, from, to time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Preload("CategoryRef").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// GetExpensesByCategory returns all expenses whose free-text category
// name matches, newest first.
func (s *expenseService) GetExpensesByCategory(userID, categoryName string) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Preload("CategoryRef").
		Where("user_id = ? AND category = ?", userID, categoryName).
		Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}
