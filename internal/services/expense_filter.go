package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/Omkar-DesDev/Expense-Tracker/internal/models"
)

// SortOrder selects the ordering of a filtered expense listing.
type SortOrder string

const (
	SortAmountAsc  SortOrder = "amount_asc"
	SortAmountDesc SortOrder = "amount_desc"
	SortDateAsc    SortOrder = "date_asc"
	SortDateDesc   SortOrder = "date_desc"
)

// ParseSortOrder maps a request value to a SortOrder. Unknown or empty
// values fall back to SortDateDesc.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortAmountAsc, SortAmountDesc, SortDateAsc, SortDateDesc:
		return SortOrder(s)
	}
	return SortDateDesc
}

// DateBound is one inclusive end of a date range. A bound that could not be
// parsed as a calendar date keeps its raw text and is compared literally
// against the textual form of the date column.
type DateBound struct {
	Date *time.Time
	Raw  string
}

// IsZero reports whether the bound is absent.
func (b DateBound) IsZero() bool {
	return b.Date == nil && b.Raw == ""
}

// String returns the bound as it should be echoed back to clients.
func (b DateBound) String() string {
	if b.Date != nil {
		return b.Date.Format(models.DateLayout)
	}
	return b.Raw
}

var dateBoundLayouts = []string{
	models.DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDateBound parses an ISO-8601 date (or datetime, truncated to its
// date). Unparseable input is kept raw rather than rejected.
func ParseDateBound(s string) DateBound {
	if s == "" {
		return DateBound{}
	}
	for _, layout := range dateBoundLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := models.DateOnly(t)
			return DateBound{Date: &d}
		}
	}
	return DateBound{Raw: s}
}

// ExpenseFilter holds the optional listing parameters of the dashboard and
// export endpoints.
type ExpenseFilter struct {
	Category *models.Category
	Start    DateBound
	End      DateBound
	Sort     SortOrder
}

// ParseExpenseFilter builds a filter from raw request values. A category
// that is not one of the known labels is ignored.
func ParseExpenseFilter(category, start, end, sort string) ExpenseFilter {
	f := ExpenseFilter{
		Start: ParseDateBound(start),
		End:   ParseDateBound(end),
		Sort:  ParseSortOrder(sort),
	}
	if c, ok := models.ParseCategory(category); ok {
		f.Category = &c
	}
	return f
}

// applyExpenseFilter adds the filter's predicates and ordering to q. The
// caller scopes q to a single user.
func applyExpenseFilter(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	q = applyDateBound(q, ">=", f.Start)
	q = applyDateBound(q, "<=", f.End)

	switch f.Sort {
	case SortAmountAsc:
		q = q.Order("amount ASC")
	case SortAmountDesc:
		q = q.Order("amount DESC")
	case SortDateAsc:
		q = q.Order("date ASC")
	default:
		q = q.Order("date DESC")
	}
	return q
}

func applyDateBound(q *gorm.DB, op string, b DateBound) *gorm.DB {
	switch {
	case b.Date != nil:
		return q.Where("date "+op+" ?", *b.Date)
	case b.Raw != "":
		return q.Where("CAST(date AS TEXT) "+op+" ?", b.Raw)
	}
	return q
}
