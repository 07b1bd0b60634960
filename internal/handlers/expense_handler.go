package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Omkar-DesDev/Expense-Tracker/internal/errors"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/models"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/services"
)

const (
	dashboardPath      = "/api/v1/dashboard"
	accessDeniedNotice = "Access denied"
)

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the create and update payload. Updates replace
// every field.
type ExpenseRequest struct {
	Title       string           `json:"title" binding:"required,max=140"`
	Category    string           `json:"category" binding:"required,expense_category"`
	Amount      *decimal.Decimal `json:"amount" binding:"required,gte=0" swaggertype:"number"`
	Date        string           `json:"date" binding:"required,datetime=2006-01-02" example:"2024-02-15"`
	Description string           `json:"description" binding:"max=2000"`
}

func (r *ExpenseRequest) toInput() (services.ExpenseInput, error) {
	date, err := time.Parse(models.DateLayout, r.Date)
	if err != nil {
		return services.ExpenseInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be YYYY-MM-DD")
	}
	return services.ExpenseInput{
		Title:       r.Title,
		Category:    models.Category(r.Category),
		Amount:      *r.Amount,
		Date:        date,
		Description: r.Description,
	}, nil
}

// ExpenseResponse is the wire form of an expense.
type ExpenseResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func newExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Title:       e.Title,
		Category:    e.Category.String(),
		Amount:      e.Amount.InexactFloat64(),
		Date:        e.Date.Format(models.DateLayout),
		Description: e.Description,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func newExpenseResponses(expenses []models.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = newExpenseResponse(&expenses[i])
	}
	return out
}

// NoticeResponse carries a user-visible notice alongside a redirect.
type NoticeResponse struct {
	Notice string `json:"notice"`
}

// respondExpenseError sends callers acting on someone else's expense back
// to the dashboard with a notice instead of an error.
func respondExpenseError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrExpenseAccessDenied) {
		c.Header("Location", dashboardPath)
		c.JSON(http.StatusSeeOther, NoticeResponse{Notice: accessDeniedNotice})
		return
	}
	respondWithError(c, err)
}

// ListCategories returns the fixed category set
// @Summary     List categories
// @Description Get every valid expense category in display order
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]string "Categories"
// @Router      /categories [get]
func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories()})
}

// RedirectToDashboard sends the bare listing path to the dashboard, keeping
// any filter parameters.
// @Summary     List expenses
// @Description Redirects to the dashboard, which carries the filtered listing
// @Tags        expenses
// @Security    BearerAuth
// @Success     303 "See Other"
// @Router      /expenses [get]
func (h *ExpenseHandler) RedirectToDashboard(c *gin.Context) {
	target := dashboardPath
	if q := c.Request.URL.RawQuery; q != "" {
		target += "?" + q
	}
	c.Redirect(http.StatusSeeOther, target)
}

// CreateExpense handles expense creation
// @Summary     Create expense
// @Description Record a new expense for the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense data"
// @Success     201 {object} ExpenseResponse "Created expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": newExpenseResponse(expense)})
}

// GetExpense returns one owned expense
// @Summary     Get expense
// @Description Get an expense owned by the authenticated user
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} ExpenseResponse "Expense"
// @Success     303 {object} NoticeResponse "Not the owner; redirected to dashboard"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parseExpenseID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), userID, id)
	if err != nil {
		respondExpenseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": newExpenseResponse(expense)})
}

// UpdateExpense replaces an owned expense
// @Summary     Update expense
// @Description Replace every field of an expense owned by the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Param       request body ExpenseRequest true "Expense data"
// @Success     200 {object} ExpenseResponse "Updated expense"
// @Success     303 {object} NoticeResponse "Not the owner; redirected to dashboard"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parseExpenseID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), userID, id, input)
	if err != nil {
		respondExpenseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": newExpenseResponse(expense)})
}

// DeleteExpense removes an owned expense
// @Summary     Delete expense
// @Description Permanently delete an expense owned by the authenticated user
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} map[string]string "Deleted"
// @Success     303 {object} NoticeResponse "Not the owner; redirected to dashboard"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parseExpenseID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), userID, id); err != nil {
		respondExpenseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
