package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "masareef/internal/errors"
	"masareef/internal/insights"
	"masareef/internal/models"
	"masareef/internal/services"
)

// --- mock insight service ---

type mockInsightService struct {
	getAdvisoriesFn     func(userID string) ([]insights.Advisory, error)
	getSpendingAlertsFn func(userID string) ([]insights.Alert, error)
	getSavingsTipsFn    func(userID string) ([]insights.Tip, error)
	getDashboardFn      func(userID string) (*services.DashboardSummary, error)
	getBudgetStatusFn   func(userID string) ([]services.BudgetStatus, error)
	getMonthlyTotalsFn  func(userID string) (*services.MonthlySeries, error)
}

func (m *mockInsightService) GetAdvisories(userID string) ([]insights.Advisory, error) {
	if m.getAdvisoriesFn != nil {
		return m.getAdvisoriesFn(userID)
	}
	return []insights.Advisory{}, nil
}

func (m *mockInsightService) GetSpendingAlerts(userID string) ([]insights.Alert, error) {
	if m.getSpendingAlertsFn != nil {
		return m.getSpendingAlertsFn(userID)
	}
	return []insights.Alert{}, nil
}

func (m *mockInsightService) GetSavingsTips(userID string) ([]insights.Tip, error) {
	if m.getSavingsTipsFn != nil {
		return m.getSavingsTipsFn(userID)
	}
	return []insights.Tip{}, nil
}

func (m *mockInsightService) GetDashboard(userID string) (*services.DashboardSummary, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(userID)
	}
	return &services.DashboardSummary{}, nil
}

func (m *mockInsightService) GetBudgetStatus(userID string) ([]services.BudgetStatus, error) {
	if m.getBudgetStatusFn != nil {
		return m.getBudgetStatusFn(userID)
	}
	return []services.BudgetStatus{}, nil
}

func (m *mockInsightService) GetMonthlyTotals(userID string) (*services.MonthlySeries, error) {
	if m.getMonthlyTotalsFn != nil {
		return m.getMonthlyTotalsFn(userID)
	}
	return &services.MonthlySeries{Labels: []string{}, Values: []float64{}}, nil
}

var _ services.InsightServicer = (*mockInsightService)(nil)

func setupInsightsRouter(handler *InsightsHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/dashboard", handler.GetDashboard)
	auth.GET("/budgets", handler.GetBudgetStatus)
	auth.GET("/insights", handler.GetInsights)
	auth.GET("/insights/alerts", handler.GetAlerts)
	auth.GET("/insights/tips", handler.GetTips)
	return r
}

func TestInsightsHandler_GetInsights(t *testing.T) {
	t.Run("returns advisories and monthly series", func(t *testing.T) {
		svc := &mockInsightService{
			getAdvisoriesFn: func(string) ([]insights.Advisory, error) {
				return []insights.Advisory{
					{Severity: insights.SeverityWarning, Message: "إنفاقك هذا الشهر أعلى بنسبة 15.0% من الشهر الماضي"},
				}, nil
			},
			getMonthlyTotalsFn: func(string) (*services.MonthlySeries, error) {
				return &services.MonthlySeries{
					Labels: []string{"2026-03", "2026-04"},
					Values: []float64{1000, 1150},
				}, nil
			},
		}
		handler := NewInsightsHandler(svc)
		r := setupInsightsRouter(handler)

		rec := doRequest(r, "GET", "/insights", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		advisories := result["insights"].([]interface{})
		if len(advisories) != 1 {
			t.Fatalf("expected 1 advisory, got %d", len(advisories))
		}
		first := advisories[0].(map[string]interface{})
		if first["severity"] != "warning" {
			t.Errorf("expected warning severity, got %v", first["severity"])
		}
		series := result["monthly_totals"].(map[string]interface{})
		labels := series["labels"].([]interface{})
		if len(labels) != 2 || labels[0] != "2026-03" {
			t.Errorf("expected sorted labels, got %v", labels)
		}
	})

	t.Run("returns 500 on engine failure", func(t *testing.T) {
		svc := &mockInsightService{
			getAdvisoriesFn: func(string) ([]insights.Advisory, error) {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("db connection lost"))
			},
		}
		handler := NewInsightsHandler(svc)
		r := setupInsightsRouter(handler)

		rec := doRequest(r, "GET", "/insights", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestInsightsHandler_GetAlerts(t *testing.T) {
	t.Run("returns alerts", func(t *testing.T) {
		svc := &mockInsightService{
			getSpendingAlertsFn: func(string) ([]insights.Alert, error) {
				return []insights.Alert{{Title: "تنبيه الإنفاق!", Message: "test"}}, nil
			},
		}
		handler := NewInsightsHandler(svc)
		r := setupInsightsRouter(handler)

		rec := doRequest(r, "GET", "/insights/alerts", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		alerts := result["alerts"].([]interface{})
		if len(alerts) != 1 {
			t.Errorf("expected 1 alert, got %d", len(alerts))
		}
	})

	t.Run("quiet month returns empty list", func(t *testing.T) {
		handler := NewInsightsHandler(&mockInsightService{})
		r := setupInsightsRouter(handler)

		rec := doRequest(r, "GET", "/insights/alerts", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if alerts, ok := result["alerts"].([]interface{}); !ok || len(alerts) != 0 {
			t.Errorf("expected empty alerts array, got %v", result["alerts"])
		}
	})
}

func TestInsightsHandler_GetTips(t *testing.T) {
	t.Run("returns tips", func(t *testing.T) {
		svc := &mockInsightService{
			getSavingsTipsFn: func(string) ([]insights.Tip, error) {
				return []insights.Tip{
					{Title: "التخطيط للوجبات", Message: "خطط لوجباتك الأسبوعية مسبقًا"},
					{Title: "قاعدة 24 ساعة", Message: "قبل إجراء عملية شراء كبيرة، انتظر 24 ساعة"},
				}, nil
			},
		}
		handler := NewInsightsHandler(svc)
		r := setupInsightsRouter(handler)

		rec := doRequest(r, "GET", "/insights/tips", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		tips := result["tips"].([]interface{})
		if len(tips) != 2 {
			t.Errorf("expected 2 tips, got %d", len(tips))
		}
	})
}

func TestInsightsHandler_GetDashboard(t *testing.T) {
	t.Run("returns the summary", func(t *testing.T) {
		svc := &mockInsightService{
			getDashboardFn: func(string) (*services.DashboardSummary, error) {
				return &services.DashboardSummary{
					TotalSpent:     350,
					CategoryTotals: map[string]float64{"Food": 350},
					DisplayTotals:  map[string]float64{"طعام": 350},
					CategoryNames:  map[string]string{"طعام": "Food"},
				}, nil
			},
		}
		handler := NewInsightsHandler(svc)
		r := setupInsightsRouter(handler)

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		dashboard := result["dashboard"].(map[string]interface{})
		if dashboard["total_spent"] != 350.0 {
			t.Errorf("expected total 350, got %v", dashboard["total_spent"])
		}
	})
}

func TestInsightsHandler_GetBudgetStatus(t *testing.T) {
	t.Run("returns statuses", func(t *testing.T) {
		svc := &mockInsightService{
			getBudgetStatusFn: func(string) ([]services.BudgetStatus, error) {
				return []services.BudgetStatus{
					{
						Category:   models.Category{Base: models.Base{ID: testCategoryID}, NameEn: "Food", Budget: 1000},
						Spent:      250,
						Percentage: 25,
					},
				}, nil
			},
		}
		handler := NewInsightsHandler(svc)
		r := setupInsightsRouter(handler)

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		budgets := result["budgets"].([]interface{})
		if len(budgets) != 1 {
			t.Fatalf("expected 1 status, got %d", len(budgets))
		}
		status := budgets[0].(map[string]interface{})
		if status["percentage"] != 25.0 {
			t.Errorf("expected 25%%, got %v", status["percentage"])
		}
	})
}
