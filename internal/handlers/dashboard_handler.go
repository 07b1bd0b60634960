package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Omkar-DesDev/Expense-Tracker/internal/services"
)

// DashboardHandler serves the filtered listing together with the
// lifetime aggregates.
type DashboardHandler struct {
	expenseService   services.ExpenseServicer
	analyticsService services.AnalyticsServicer
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(expenseService services.ExpenseServicer, analyticsService services.AnalyticsServicer) *DashboardHandler {
	return &DashboardHandler{expenseService: expenseService, analyticsService: analyticsService}
}

// FilterEcho reports the filter as it was applied.
type FilterEcho struct {
	Category string `json:"category"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Sort     string `json:"sort"`
}

func newFilterEcho(f services.ExpenseFilter) FilterEcho {
	echo := FilterEcho{
		Start: f.Start.String(),
		End:   f.End.String(),
		Sort:  string(f.Sort),
	}
	if f.Category != nil {
		echo.Category = f.Category.String()
	}
	return echo
}

// DashboardResponse is the dashboard payload. VisibleTotal covers only the
// filtered expenses; Total, Monthly and Categories cover the user's whole
// history.
type DashboardResponse struct {
	Expenses     []ExpenseResponse       `json:"expenses"`
	VisibleTotal float64                 `json:"visible_total"`
	Total        float64                 `json:"total"`
	Monthly      []services.MonthlyTotal `json:"monthly"`
	Categories   []services.CategorySum  `json:"categories"`
	Filter       FilterEcho              `json:"filter"`
}

// GetDashboard returns the filtered expense listing and aggregates
// @Summary     Dashboard
// @Description Filtered, sorted expenses plus lifetime total, monthly totals and category sums
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Category filter (ignored unless a known category)"
// @Param       start    query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       end      query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       sort     query string false "amount_asc, amount_desc, date_asc or date_desc (default)"
// @Success     200 {object} DashboardResponse "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	filter := filterFromQuery(c)

	expenses, err := h.expenseService.ListExpenses(ctx, userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	total, err := h.analyticsService.TotalForUser(ctx, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	monthly, err := h.analyticsService.MonthlyTotals(ctx, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	categories, err := h.analyticsService.CategorySums(ctx, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var visible float64
	for i := range expenses {
		visible += expenses[i].Amount.InexactFloat64()
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Expenses:     newExpenseResponses(expenses),
		VisibleTotal: visible,
		Total:        total,
		Monthly:      monthly,
		Categories:   categories,
		Filter:       newFilterEcho(filter),
	})
}
