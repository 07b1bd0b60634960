package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/Omkar-DesDev/Expense-Tracker/internal/errors"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/export"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/logger"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/models"
)

// exportService renders filtered expense listings as files.
type exportService struct {
	db       *gorm.DB
	expenses ExpenseServicer
	now      func() time.Time
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB, expenses ExpenseServicer) ExportServicer {
	return &exportService{db: db, expenses: expenses, now: time.Now}
}

// Export runs the filter query afresh and renders the whole file in memory.
func (s *exportService) Export(ctx context.Context, userID string, filter ExpenseFilter, format export.Format) (*ExportFile, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("id", "username").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	expenses, err := s.expenses.ListExpenses(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	data, err := export.Render(format, user.Username, export.RowsFromExpenses(expenses))
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			return nil, apperrors.ErrUnsupportedFormat
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Debugw("export rendered",
		"user_id", userID,
		"format", format,
		"rows", len(expenses),
		"bytes", len(data),
	)

	return &ExportFile{
		Filename:    export.Filename(user.Username, s.now(), format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}
