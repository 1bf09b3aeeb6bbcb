package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the layout for expense dates in input and CSV.
const DateFormat = "2006-01-02"

// Expense is one recorded expense. Records are values; nothing mutates one
// after it has been built.
type Expense struct {
	ID          string
	Amount      decimal.Decimal // never negative
	Category    Category
	Description string
	Date        time.Time // civil date at 00:00 UTC
	CreatedAt   time.Time
}

// CivilDate truncates t to its calendar date in t's own location and
// returns that date at midnight UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InMonth reports whether the expense date falls in the given year and month.
func (e Expense) InMonth(year int, month time.Month) bool {
	return e.Date.Year() == year && e.Date.Month() == month
}
