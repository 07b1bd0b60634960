package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/Omkar-DesDev/Expense-Tracker/internal/errors"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/models"
)

// analyticsService computes per-user aggregates.
type analyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB) AnalyticsServicer {
	return &analyticsService{db: db}
}

func (s *analyticsService) userExpenses(ctx context.Context, userID string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Expense{}).Where("user_id = ?", userID)
}

// monthExpr renders the date column as YYYY-MM in the connected dialect.
func monthExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "to_char(date, 'YYYY-MM')"
	}
	return "strftime('%Y-%m', date)"
}

// TotalForUser sums every expense of the user; 0 when there are none.
func (s *analyticsService) TotalForUser(ctx context.Context, userID string) (float64, error) {
	var total float64
	if err := s.userExpenses(ctx, userID).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// MonthlyTotals buckets the user's expenses by calendar month, oldest first.
func (s *analyticsService) MonthlyTotals(ctx context.Context, userID string) ([]MonthlyTotal, error) {
	totals := []MonthlyTotal{}
	if err := s.userExpenses(ctx, userID).
		Select(monthExpr(s.db) + " AS month, COALESCE(SUM(amount), 0) AS total").
		Group("month").
		Order("month ASC").
		Scan(&totals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// CategorySums buckets the user's expenses by category. Order is whatever
// the store returns.
func (s *analyticsService) CategorySums(ctx context.Context, userID string) ([]CategorySum, error) {
	sums := []CategorySum{}
	if err := s.userExpenses(ctx, userID).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Group("category").
		Scan(&sums).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sums, nil
}
