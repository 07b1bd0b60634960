package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/Omkar-DesDev/Expense-Tracker/internal/errors"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/middleware"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/services"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parseExpenseID reads the :id path parameter. An id that is not a UUID
// cannot name any expense, so it is reported as not found.
func parseExpenseID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if !uuid.IsValid(id) {
		return "", apperrors.ErrExpenseNotFound
	}
	return id, nil
}

// filterFromQuery builds the listing filter from the category, start, end
// and sort query parameters.
func filterFromQuery(c *gin.Context) services.ExpenseFilter {
	return services.ParseExpenseFilter(
		c.Query("category"),
		c.Query("start"),
		c.Query("end"),
		c.Query("sort"),
	)
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// respondWithBindError reports a request binding failure as INVALID_INPUT
// carrying the validator's field-level message.
func respondWithBindError(c *gin.Context, err error) {
	respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
