package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Omkar-DesDev/Expense-Tracker/internal/export"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, username, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(ctx context.Context, login, password string) (*models.User, error)
	StoreRefreshTokenHash(ctx context.Context, userID, tokenHash string) error
	GetRefreshTokenHash(ctx context.Context, userID string) (string, error)
}

// ExpenseInput carries the user-editable fields of an expense. Updates
// replace every field.
type ExpenseInput struct {
	Title       string
	Category    models.Category
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// ExpenseServicer defines the contract for expense records and the filtered listing.
type ExpenseServicer interface {
	CreateExpense(ctx context.Context, userID string, input ExpenseInput) (*models.Expense, error)
	GetExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, input ExpenseInput) (*models.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
	ListExpenses(ctx context.Context, userID string, filter ExpenseFilter) ([]models.Expense, error)
}

// MonthlyTotal is the sum of one user's expenses in a calendar month.
type MonthlyTotal struct {
	Month string  `json:"month" gorm:"column:month"`
	Total float64 `json:"total" gorm:"column:total"`
}

// CategorySum is the sum of one user's expenses in a category.
type CategorySum struct {
	Category models.Category `json:"category" gorm:"column:category"`
	Total    float64         `json:"total" gorm:"column:total"`
}

// AnalyticsServicer computes aggregates over a user's full expense history.
// Filters never apply here.
type AnalyticsServicer interface {
	TotalForUser(ctx context.Context, userID string) (float64, error)
	MonthlyTotals(ctx context.Context, userID string) ([]MonthlyTotal, error)
	CategorySums(ctx context.Context, userID string) ([]CategorySum, error)
}

// ExportFile is a fully rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportServicer renders a user's filtered expenses as a downloadable file.
type ExportServicer interface {
	Export(ctx context.Context, userID string, filter ExpenseFilter, format export.Format) (*ExportFile, error)
}
