package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"masareef/internal/services"
)

// InsightsHandler exposes the analytics engine: advisories, projection
// alerts, savings tips, and the dashboard/budget summaries.
type InsightsHandler struct {
	insightService services.InsightServicer
}

// NewInsightsHandler creates a new InsightsHandler
func NewInsightsHandler(insightService services.InsightServicer) *InsightsHandler {
	return &InsightsHandler{insightService: insightService}
}

// GetInsights returns spending advisories plus the monthly totals
// series for charting
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	advisories, err := h.insightService.GetAdvisories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.insightService.GetMonthlyTotals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insights":       advisories,
		"monthly_totals": series,
	})
}

// GetAlerts returns budget-projection alerts for the current month
func (h *InsightsHandler) GetAlerts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alerts, err := h.insightService.GetSpendingAlerts(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// GetTips returns a random selection of savings tips
func (h *InsightsHandler) GetTips(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tips, err := h.insightService.GetSavingsTips(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tips": tips})
}

// GetDashboard returns the current-month spending summary with alerts
// and tips
func (h *InsightsHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.insightService.GetDashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": summary})
}

// GetBudgetStatus returns every category with its current-month spend
// and percentage of budget
func (h *InsightsHandler) GetBudgetStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statuses, err := h.insightService.GetBudgetStatus(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": statuses})
}
