package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "github.com/Omkar-DesDev/Expense-Tracker/internal/errors"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/models"
)

const maxTitleLength = 140

// expenseService handles expense records and the filtered listing.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

func validateExpenseInput(input *ExpenseInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if utf8.RuneCountInString(input.Title) > maxTitleLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "title must be at most 140 characters")
	}
	if !input.Category.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category")
	}
	if input.Amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if input.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	input.Date = models.DateOnly(input.Date)
	return nil
}

// CreateExpense records a new expense owned by userID.
func (s *expenseService) CreateExpense(ctx context.Context, userID string, input ExpenseInput) (*models.Expense, error) {
	if err := validateExpenseInput(&input); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		Title:       input.Title,
		Category:    input.Category,
		Amount:      input.Amount,
		Date:        input.Date,
		Description: input.Description,
	}
	if err := s.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetExpense loads an expense and checks that userID owns it. A missing
// expense is reported before ownership is considered.
func (s *expenseService) GetExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.WithContext(ctx).Where("id = ?", expenseID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expense.UserID != userID {
		return nil, apperrors.ErrExpenseAccessDenied
	}
	return &expense, nil
}

// UpdateExpense replaces every editable field of an owned expense. Concurrent
// updates are not guarded; the last write wins.
func (s *expenseService) UpdateExpense(ctx context.Context, userID, expenseID string, input ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	if err := validateExpenseInput(&input); err != nil {
		return nil, err
	}

	expense.Title = input.Title
	expense.Category = input.Category
	expense.Amount = input.Amount
	expense.Date = input.Date
	expense.Description = input.Description

	if err := s.db.WithContext(ctx).Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense permanently removes an owned expense.
func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListExpenses returns the user's expenses matching filter, in filter order.
func (s *expenseService) ListExpenses(ctx context.Context, userID string, filter ExpenseFilter) ([]models.Expense, error) {
	q := s.db.WithContext(ctx).Model(&models.Expense{}).Where("user_id = ?", userID)
	q = applyExpenseFilter(q, filter)

	expenses := []models.Expense{}
	if err := q.Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}
