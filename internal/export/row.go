// Package export renders expense listings as CSV, XLSX and PDF downloads.
package export

import (
	"github.com/Omkar-DesDev/Expense-Tracker/internal/models"
)

// Header is the column row shared by every format.
var Header = []string{"Date", "Title", "Category", "Amount", "Description"}

// Row is the projection of one expense into export columns. Absent values
// are already replaced by their defaults.
type Row struct {
	Date        string
	Title       string
	Category    string
	Amount      float64
	Description string
}

// RowFromExpense projects e into a Row.
func RowFromExpense(e models.Expense) Row {
	r := Row{
		Title:       e.Title,
		Category:    string(e.Category),
		Amount:      e.Amount.InexactFloat64(),
		Description: e.Description,
	}
	if !e.Date.IsZero() {
		r.Date = e.Date.Format(models.DateLayout)
	}
	return r
}

// RowsFromExpenses projects expenses in order.
func RowsFromExpenses(expenses []models.Expense) []Row {
	rows := make([]Row, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, RowFromExpense(e))
	}
	return rows
}
