package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "masareef/internal/errors"
	"masareef/internal/pagination"
	"masareef/internal/services"
	"masareef/internal/uuid"
)

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
// Either category_id or category (free-text name) must be provided.
type CreateExpenseRequest struct {
	CategoryID  *string `json:"category_id" binding:"omitempty,uuid"`
	Category    string  `json:"category" binding:"omitempty,max=100"`
	Amount      float64 `json:"amount" binding:"required,min=0"`
	Date        string  `json:"date" binding:"required,dateonly"`
	Description string  `json:"description" binding:"omitempty,max=500"`
}

// UpdateExpenseRequest represents the request payload for updating an expense
type UpdateExpenseRequest struct {
	CategoryID  *string  `json:"category_id" binding:"omitempty,uuid"`
	Category    string   `json:"category" binding:"omitempty,max=100"`
	Amount      *float64 `json:"amount" binding:"omitempty,min=0"`
	Date        string   `json:"date" binding:"omitempty,dateonly"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
}

// ListExpensesQuery represents the query parameters for listing expenses
type ListExpensesQuery struct {
	pagination.PageRequest
	Category   string `form:"category"`
	CategoryID string `form:"category_id"`
	From       string `form:"from" binding:"omitempty,dateonly"`
	To         string `form:"to" binding:"omitempty,dateonly"`
}

// CreateExpense handles recording a new expense
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, req.CategoryID, req.Category, req.Amount, date, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetUserExpenses handles the retrieval of the user's expenses with
// optional category and date-range filters
func (h *ExpenseHandler) GetUserExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.ExpenseFilter
	if query.Category != "" {
		filter.Category = &query.Category
	}
	if query.CategoryID != "" {
		if !uuid.IsValid(query.CategoryID) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category_id"))
			return
		}
		filter.CategoryID = &query.CategoryID
	}
	if query.From != "" {
		from, err := parseDate(query.From)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.FromDate = &from
	}
	if query.To != "" {
		to, err := parseDate(query.To)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.ToDate = &to
	}

	result, err := h.expenseService.GetUserExpenses(userID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": result})
}

// GetExpenseByID handles the retrieval of a specific expense
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles editing an expense in place
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date *time.Time
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		date = &parsed
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, req.CategoryID, req.Category, req.Amount, date, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
