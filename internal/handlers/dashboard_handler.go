package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// DashboardHandler serves the aggregated views the dashboard client
// renders: summary stats, category and monthly breakdowns with their
// chart-ready shapes, and the recent-transactions list.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns totals, balance, most expensive category, and recent
// transactions for the requested range (week, month, or year).
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.dashboardService.GetStats(userID, c.DefaultQuery("range", "month"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetCategoryExpenses returns the per-category expense breakdown together
// with its pie chart payload.
func (h *DashboardHandler) GetCategoryExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.dashboardService.GetCategoryExpenses(userID, c.DefaultQuery("range", "month"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": items,
		"chart":      services.CategoryChartData(items),
	})
}

// GetMonthlyExpenses returns twelve monthly expense totals for a year
// together with the line chart payload.
func (h *DashboardHandler) GetMonthlyExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, parseErr := strconv.Atoi(yearStr)
		if parseErr != nil || parsed < 1970 || parsed > 9999 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year"))
			return
		}
		year = parsed
	}

	items, err := h.dashboardService.GetMonthlyExpenses(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":   year,
		"months": items,
		"chart":  services.MonthlyChartData(items),
	})
}

// GetRecentTransactions returns the user's most recent transactions.
func (h *DashboardHandler) GetRecentTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := 5
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, parseErr := strconv.Atoi(limitStr)
		if parseErr != nil || parsed < 1 || parsed > 100 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid limit"))
			return
		}
		limit = parsed
	}

	transactions, err := h.dashboardService.GetRecentTransactions(userID, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
